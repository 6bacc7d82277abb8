package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guidanceoffice/discipline-backend/internal/repository"
	"github.com/guidanceoffice/discipline-backend/internal/response"
	"github.com/guidanceoffice/discipline-backend/internal/service"
)

// ReportHandler handles the chart, calendar, and search endpoints.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// OffensesByTypeAndGrade godoc
// GET /api/v1/charts/offenses-by-type-grade
// Returns grade_level -> {warning, minor, major} counts for charting.
func (h *ReportHandler) OffensesByTypeAndGrade(c *gin.Context) {
	data, err := h.reportService.OffensesByTypeAndGrade(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, data)
}

// OffensesByGenderAndGrade godoc
// GET /api/v1/charts/offenses-by-gender-grade
// Returns grade_level -> {Male, Female} counts for charting.
func (h *ReportHandler) OffensesByGenderAndGrade(c *gin.Context) {
	data, err := h.reportService.OffensesByGenderAndGrade(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, data)
}

// Calendar godoc
// GET /api/v1/students/:id/calendar?year=&month=
// Returns the student's offenses for the month grouped by day, plus
// prev/next navigation targets. Missing parameters default to the current
// month; an out-of-range month falls back to the current month.
func (h *ReportHandler) Calendar(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	now := time.Now()
	year := queryInt(c, "year", now.Year())
	month := queryInt(c, "month", int(now.Month()))

	cal, err := h.reportService.Calendar(c.Request.Context(), studentID, year, month)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, cal)
}

// Search godoc
// GET /api/v1/offenses?search=&page=
// Browses all offenses newest first, 20 per page, optionally filtered by
// a case-insensitive term over student name, description, and type.
func (h *ReportHandler) Search(c *gin.Context) {
	term := c.Query("search")
	page := queryInt(c, "page", 1)

	results, pagination, err := h.reportService.Search(c.Request.Context(), term, page)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"offenses": results}, pagination)
}

// queryInt parses an integer query parameter, falling back on absence or
// garbage input.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
