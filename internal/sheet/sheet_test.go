package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/examhall/exam-portal-backend/internal/exam"
)

func buildWorkbook(t *testing.T, header []string, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(sheet, col+"1", h); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}
	for r, row := range rows {
		for c, cell := range row {
			col, _ := excelize.ColumnNumberToName(c + 1)
			cellRef := fmt.Sprintf("%s%d", col, r+2)
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

var questionHeader = []string{"questionText", "optionA", "optionB", "optionC", "optionD", "correctAnswer"}

func TestParseQuestions(t *testing.T) {
	buf := buildWorkbook(t, questionHeader, [][]string{
		{"What is 2+2?", "3", "4", "5", "6", "4"},
		{"Capital of France?", "Paris", "London", "Berlin", "Rome", "Paris"},
	})

	questions, err := ParseQuestions(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	q := questions[0]
	if q.QuestionText != "What is 2+2?" {
		t.Errorf("question text = %q", q.QuestionText)
	}
	if len(q.Options) != 4 || q.Options[1] != "4" {
		t.Errorf("options = %v", q.Options)
	}
	if q.CorrectAnswer != "4" {
		t.Errorf("correct answer = %q", q.CorrectAnswer)
	}
}

func TestParseQuestionsHeaderCaseInsensitive(t *testing.T) {
	header := []string{"QUESTIONTEXT", "OptionA", "optionb", "OPTIONC", "optionD", "CorrectAnswer"}
	buf := buildWorkbook(t, header, [][]string{
		{"Q1", "a", "b", "c", "d", "b"},
	})

	questions, err := ParseQuestions(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
}

func TestParseQuestionsMissingColumns(t *testing.T) {
	header := []string{"questionText", "optionA", "optionB"}
	buf := buildWorkbook(t, header, [][]string{
		{"Q1", "a", "b"},
	})

	_, err := ParseQuestions(buf)
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
	if !strings.Contains(err.Error(), "correctAnswer") {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestParseQuestionsAnswerNotAnOption(t *testing.T) {
	buf := buildWorkbook(t, questionHeader, [][]string{
		{"Q1", "a", "b", "c", "d", "e"},
	})

	_, err := ParseQuestions(buf)
	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected RowError, got %v", err)
	}
	if rowErr.Row != 2 {
		t.Errorf("row = %d, want 2", rowErr.Row)
	}
}

func TestParseQuestionsEmptyCell(t *testing.T) {
	buf := buildWorkbook(t, questionHeader, [][]string{
		{"Q1", "a", "", "c", "d", "a"},
	})

	_, err := ParseQuestions(buf)
	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected RowError, got %v", err)
	}
	if !strings.Contains(rowErr.Reason, "optionB") {
		t.Errorf("reason should name the empty column: %v", rowErr)
	}
}

func TestParseQuestionsSkipsBlankRows(t *testing.T) {
	buf := buildWorkbook(t, questionHeader, [][]string{
		{"Q1", "a", "b", "c", "d", "a"},
		{"", "", "", "", "", ""},
		{"Q2", "w", "x", "y", "z", "z"},
	})

	questions, err := ParseQuestions(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
}

func TestParseQuestionsNoDataRows(t *testing.T) {
	buf := buildWorkbook(t, questionHeader, nil)

	_, err := ParseQuestions(buf)
	if !errors.Is(err, ErrEmptySheet) {
		t.Fatalf("expected ErrEmptySheet, got %v", err)
	}
}

func TestParseQuestionsNotAWorkbook(t *testing.T) {
	_, err := ParseQuestions(strings.NewReader("not an xlsx file"))
	if err == nil {
		t.Fatal("expected an error for a non-xlsx payload")
	}
}

func TestBuildResultWorkbook(t *testing.T) {
	rows := []exam.SubmittedRow{
		{StudentID: 1, Name: "Aisha Khan", PRN: "PRN-001", Score: 18, SubmittedAt: time.Now()},
		{StudentID: 2, Name: "Rohan Mehta", PRN: "PRN-002", Score: 12, SubmittedAt: time.Now()},
	}

	f, err := BuildResultWorkbook("Midterm", rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != "Midterm Results" {
		t.Errorf("sheet name = %q", sheet)
	}

	got, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}
	if got[0][0] != "PRN" || got[0][1] != "Student Name" || got[0][2] != "Marks Obtained" {
		t.Errorf("header = %v", got[0])
	}
	if got[1][0] != "PRN-001" || got[1][2] != "18" {
		t.Errorf("first row = %v", got[1])
	}
}

func TestBuildResultWorkbookLongTestName(t *testing.T) {
	f, err := BuildResultWorkbook(strings.Repeat("x", 40), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	if name := f.GetSheetName(0); len(name) > 31 {
		t.Errorf("sheet name exceeds xlsx limit: %d chars", len(name))
	}
}

func TestBuildResultWorkbookNameWithForbiddenChars(t *testing.T) {
	rows := []exam.SubmittedRow{
		{StudentID: 1, Name: "Aisha Khan", PRN: "PRN-001", Score: 9, SubmittedAt: time.Now()},
	}

	f, err := BuildResultWorkbook("Unit 1: Ciphers [A/B]", rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if strings.ContainsAny(sheet, `:\/?*[]`) {
		t.Errorf("sheet name contains forbidden characters: %q", sheet)
	}

	got, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(got))
	}
}

func TestBuildResultWorkbookMultibyteTestName(t *testing.T) {
	f, err := BuildResultWorkbook(strings.Repeat("é", 40), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	name := []rune(f.GetSheetName(0))
	if len(name) > 31 {
		t.Errorf("sheet name exceeds xlsx limit: %d runes", len(name))
	}
	for _, r := range name {
		if r != 'é' {
			t.Errorf("truncation split a rune: %q", string(name))
			break
		}
	}
}

func TestResultFilename(t *testing.T) {
	got := ResultFilename(`Unit 1: "Intro" / Basics`)
	if strings.ContainsAny(got, `/\":*?<>|`) {
		t.Errorf("filename contains forbidden characters: %q", got)
	}
	if !strings.HasSuffix(got, "_results.xlsx") {
		t.Errorf("filename = %q", got)
	}
}
