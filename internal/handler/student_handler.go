package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eaglebank/ledger-service/internal/cqrs"
	"github.com/eaglebank/ledger-service/internal/middleware"
	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/store"
)

// StudentCommander defines the write-side operations used by StudentHandler.
type StudentCommander interface {
	CreateStudent(ctx context.Context, cmd cqrs.CreateStudentCommand) (*models.StudentRecord, error)
	UpdateStudent(ctx context.Context, cmd cqrs.UpdateStudentCommand) (*models.StudentView, error)
	DeleteStudent(ctx context.Context, cmd cqrs.DeleteStudentCommand) error
}

// StudentQuerier defines the read-side operations used by StudentHandler.
type StudentQuerier interface {
	GetStudent(ctx context.Context, q cqrs.GetStudentQuery) (*models.StudentView, error)
}

// StudentHandler handles student-related HTTP requests.
type StudentHandler struct {
	commands StudentCommander
	queries  StudentQuerier
}

type CreateStudentRequest struct {
	Name   string `json:"name" validate:"required"`
	Course string `json:"course" validate:"required"`
}

type UpdateStudentRequest struct {
	Course string `json:"course" validate:"required"`
}

func NewStudentHandler(commands StudentCommander, queries StudentQuerier) *StudentHandler {
	return &StudentHandler{commands: commands, queries: queries}
}

func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	record, err := h.commands.CreateStudent(c.Request.Context(), cqrs.CreateStudentCommand{
		Name:   req.Name,
		Course: req.Course,
	})
	if err != nil {
		respondWithStoreError(c, err, "Failed to create student")
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetStudent(c.Request.Context(), cqrs.GetStudentQuery{StudentID: id})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Student not found")
			return
		}
		respondWithStoreError(c, err, "Failed to get student")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.commands.UpdateStudent(c.Request.Context(), cqrs.UpdateStudentCommand{
		StudentID: id,
		Course:    req.Course,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Student not found")
			return
		}
		respondWithStoreError(c, err, "Failed to update student")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.commands.DeleteStudent(c.Request.Context(), cqrs.DeleteStudentCommand{StudentID: id})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Student not found")
			return
		}
		respondWithStoreError(c, err, "Failed to delete student")
		return
	}

	c.Status(http.StatusNoContent)
}

// pathID parses the :id path parameter, answering 400 itself on bad input.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid identifier")
		return 0, false
	}
	return id, true
}

// respondWithStoreError maps infrastructure failures onto HTTP statuses.
func respondWithStoreError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, store.ErrUnavailable) {
		middleware.RespondWithError(c, http.StatusServiceUnavailable, "Storage temporarily unavailable")
		return
	}
	middleware.RespondWithError(c, http.StatusInternalServerError, fallback)
}
