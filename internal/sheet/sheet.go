// Package sheet reads question workbooks uploaded by teachers and builds
// result workbooks for download.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/examhall/exam-portal-backend/internal/exam"
	"github.com/examhall/exam-portal-backend/internal/model"
)

// Question sheet column headers, matched case-insensitively on the first row.
var questionColumns = []string{
	"questionText", "optionA", "optionB", "optionC", "optionD", "correctAnswer",
}

var (
	ErrEmptySheet     = errors.New("workbook has no data rows")
	ErrMissingColumns = errors.New("workbook is missing required columns")
)

// RowError describes a validation failure on a specific data row.
// Row is the 1-based row number as shown in a spreadsheet application.
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// ParseQuestions reads the first worksheet of an xlsx file and returns the
// questions it contains, in sheet order. The first row must carry the
// questionText, optionA..optionD and correctAnswer headers. Every data row
// is validated: no blank cells, and the correct answer must be one of the
// four options, compared exactly.
func ParseQuestions(r io.Reader) ([]model.CreateQuestionRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	colIdx, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var questions []model.CreateQuestionRequest
	for i, row := range rows[1:] {
		rowNum := i + 2

		if blankRow(row) {
			continue
		}

		cells := make([]string, len(questionColumns))
		for c, name := range questionColumns {
			idx := colIdx[strings.ToLower(name)]
			if idx < len(row) {
				cells[c] = strings.TrimSpace(row[idx])
			}
			if cells[c] == "" {
				return nil, &RowError{Row: rowNum, Reason: fmt.Sprintf("empty %s cell", name)}
			}
		}

		q := model.CreateQuestionRequest{
			QuestionText:  cells[0],
			Options:       []string{cells[1], cells[2], cells[3], cells[4]},
			CorrectAnswer: cells[5],
		}

		if !contains(q.Options, q.CorrectAnswer) {
			return nil, &RowError{Row: rowNum, Reason: "correctAnswer does not match any option"}
		}

		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, ErrEmptySheet
	}
	return questions, nil
}

func mapColumns(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, name := range questionColumns {
		if _, ok := idx[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func contains(options []string, answer string) bool {
	for _, o := range options {
		if o == answer {
			return true
		}
	}
	return false
}

// BuildResultWorkbook renders the submitted half of a report as an xlsx
// workbook: one row per scored submission with PRN, name and marks.
func BuildResultWorkbook(testName string, rows []exam.SubmittedRow) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := sanitizeSheetName(testName + " Results")
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	headers := []string{"PRN", "Student Name", "Marks Obtained"}
	widths := []float64{25, 35, 20}
	for i, h := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, col+"1", h); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		n := i + 2
		if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", n), row.PRN); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, fmt.Sprintf("B%d", n), row.Name); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, fmt.Sprintf("C%d", n), row.Score); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// sanitizeSheetName makes an arbitrary test name legal as a worksheet name:
// the xlsx format forbids : \ / ? * [ ] and caps names at 31 characters.
func sanitizeSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	return name
}

// ResultFilename builds the attachment filename for a report download.
func ResultFilename(testName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return '_'
		}
		return r
	}, testName)
	return name + "_results.xlsx"
}
