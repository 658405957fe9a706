package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/examhall/exam-portal-backend/internal/config"
	"github.com/examhall/exam-portal-backend/internal/response"
	"github.com/examhall/exam-portal-backend/internal/sheet"
)

// SheetHandler handles question workbook uploads.
type SheetHandler struct {
	cfg *config.Config
}

// NewSheetHandler creates a new SheetHandler.
func NewSheetHandler(cfg *config.Config) *SheetHandler {
	return &SheetHandler{cfg: cfg}
}

// ParseQuestionSheet godoc
// POST /api/v1/teacher/question-sheets
// Parses an uploaded xlsx workbook into a validated question list. The
// teacher reviews the result client-side before creating the test, so this
// endpoint persists nothing.
func (h *SheetHandler) ParseQuestionSheet(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
			return
		}
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		return
	}

	questions, err := sheet.ParseQuestions(file)
	if err != nil {
		var rowErr *sheet.RowError
		switch {
		case errors.As(err, &rowErr):
			response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrBadQuestionSheet,
				map[string]string{"row": rowErr.Error()})
		case errors.Is(err, sheet.ErrEmptySheet), errors.Is(err, sheet.ErrMissingColumns):
			response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrBadQuestionSheet,
				map[string]string{"sheet": err.Error()})
		default:
			response.Fail(c, http.StatusBadRequest, response.ErrBadQuestionSheet)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}
