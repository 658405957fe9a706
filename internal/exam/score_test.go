package exam

import (
	"testing"

	"github.com/examhall/exam-portal-backend/internal/model"
	"github.com/google/uuid"
)

func makeQuestions(correct ...string) []model.Question {
	qs := make([]model.Question, len(correct))
	for i, c := range correct {
		qs[i] = model.Question{
			ID:            uuid.New(),
			QuestionText:  "q",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: c,
			OrderNum:      i + 1,
		}
	}
	return qs
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		correct []string
		// answers maps question index → selected option; indexes not
		// present are left unanswered.
		answers map[int]string
		want    int
	}{
		{name: "no answers", correct: []string{"A", "B", "C"}, answers: nil, want: 0},
		{name: "all correct", correct: []string{"A", "B", "C"}, answers: map[int]string{0: "A", 1: "B", 2: "C"}, want: 3},
		{name: "all wrong", correct: []string{"A", "B"}, answers: map[int]string{0: "B", 1: "A"}, want: 0},
		{name: "mixed with unanswered", correct: []string{"A", "B", "C", "D"}, answers: map[int]string{0: "A", 1: "C", 3: "D"}, want: 2},
		{name: "case sensitive", correct: []string{"A"}, answers: map[int]string{0: "a"}, want: 0},
		{name: "whitespace is a non-match", correct: []string{"A"}, answers: map[int]string{0: "A "}, want: 0},
		{name: "empty question set", correct: nil, answers: nil, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qs := makeQuestions(tc.correct...)
			answers := make(map[string]string, len(tc.answers))
			for idx, sel := range tc.answers {
				answers[qs[idx].ID.String()] = sel
			}

			got := Score(qs, answers)
			if got != tc.want {
				t.Errorf("Score() = %d, want %d", got, tc.want)
			}
			if got < 0 || got > len(qs) {
				t.Errorf("Score() = %d out of bounds [0, %d]", got, len(qs))
			}
		})
	}
}

func TestScoreIgnoresUnknownQuestionIDs(t *testing.T) {
	qs := makeQuestions("A", "B")
	answers := map[string]string{
		qs[0].ID.String():  "A",
		uuid.New().String(): "B", // not part of the test
	}

	if got := Score(qs, answers); got != 1 {
		t.Errorf("Score() = %d, want 1", got)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	qs := makeQuestions("A", "B", "C", "D", "A")
	answers := map[string]string{
		qs[0].ID.String(): "A",
		qs[1].ID.String(): "B",
		qs[2].ID.String(): "A",
		qs[4].ID.String(): "A",
	}

	// Map iteration order varies between runs; the score must not.
	first := Score(qs, answers)
	for i := 0; i < 50; i++ {
		if got := Score(qs, answers); got != first {
			t.Fatalf("Score() = %d on iteration %d, want %d", got, i, first)
		}
	}
	if first != 3 {
		t.Errorf("Score() = %d, want 3", first)
	}
}

// The worked scenario: four questions, Q1 and Q4 answered correctly, Q2
// wrong, Q3 unanswered.
func TestScoreScenario(t *testing.T) {
	qs := makeQuestions("A", "B", "C", "D")
	answers := map[string]string{
		qs[0].ID.String(): "A",
		qs[1].ID.String(): "D",
		qs[3].ID.String(): "D",
	}

	if got := Score(qs, answers); got != 2 {
		t.Errorf("Score() = %d, want 2", got)
	}
	if len(qs) != 4 {
		t.Errorf("total questions = %d, want 4", len(qs))
	}
}
