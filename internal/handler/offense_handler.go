package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guidanceoffice/discipline-backend/internal/model"
	"github.com/guidanceoffice/discipline-backend/internal/repository"
	"github.com/guidanceoffice/discipline-backend/internal/response"
	"github.com/guidanceoffice/discipline-backend/internal/service"
	"github.com/guidanceoffice/discipline-backend/internal/validator"
)

// OffenseHandler handles the per-student offense endpoints.
type OffenseHandler struct {
	offenseService *service.OffenseService
}

// NewOffenseHandler creates a new OffenseHandler.
func NewOffenseHandler(offenseService *service.OffenseService) *OffenseHandler {
	return &OffenseHandler{offenseService: offenseService}
}

// ListForStudent godoc
// GET /api/v1/students/:id/offenses
// Lists all offenses recorded against one student.
func (h *OffenseHandler) ListForStudent(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	student, offenses, err := h.offenseService.ListForStudent(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"student":  student,
		"offenses": offenses,
	})
}

// Create godoc
// POST /api/v1/students/:id/offenses
// Records an offense against the student in the path.
func (h *OffenseHandler) Create(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.OffenseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	date, err := model.ParseDate(req.Date)
	if err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"date": "date must be in YYYY-MM-DD format"})
		return
	}

	offense := &model.Offense{
		OffenseType: req.OffenseType,
		Category:    req.Category,
		Subtype:     req.Subtype,
		Date:        date,
		Description: req.Description,
	}

	if err := h.offenseService.Create(c.Request.Context(), studentID, offense); err != nil {
		switch {
		case errors.Is(err, repository.ErrStudentMissing):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrInvalidField):
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"offense": offense})
}

// Delete godoc
// DELETE /api/v1/offenses/:id
// Removes a single offense record.
func (h *OffenseHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.offenseService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "offense deleted successfully"})
}
