// Package exam holds the pure domain logic of the portal: scoring a
// submitted answer set, classifying a test's time window, and building the
// teacher-facing report partition. Nothing in this package touches the
// database or the clock; callers pass both in.
package exam

import "github.com/examhall/exam-portal-backend/internal/model"

// Score awards one point for every question whose selected option matches
// the correct answer exactly. The comparison is case-sensitive and untrimmed:
// authored data is taken as-is, so a stray space in the sheet is a non-match.
// Questions absent from answers are unanswered and score zero; wrong answers
// carry no penalty. The result is always within [0, len(questions)].
func Score(questions []model.Question, answers map[string]string) int {
	score := 0
	for _, q := range questions {
		selected, ok := answers[q.ID.String()]
		if !ok {
			continue
		}
		if selected == q.CorrectAnswer {
			score++
		}
	}
	return score
}
