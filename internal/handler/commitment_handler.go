package handler

import (
	"errors"
	"net/http"

	"github.com/Shunsuke0205/inspirit-for-supporter/internal/service"
	"github.com/labstack/echo/v4"
)

type CommitmentHandler struct {
	svc service.CommitmentService
}

func NewCommitmentHandler(svc service.CommitmentService) *CommitmentHandler {
	return &CommitmentHandler{svc: svc}
}

type CommitmentListResponse struct {
	StudentID string   `json:"studentId"`
	Dates     []string `json:"dates"`
}

func (h *CommitmentHandler) Report(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	commitment, err := h.svc.Report(c.Request().Context(), uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyReported):
			return c.JSON(http.StatusConflict, NewErrorResponse("already_reported", "a report already exists for today"))
		case errors.Is(err, service.ErrPersistence):
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to record report"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"date": commitment.CommittedDateJST.Format("2006-01-02"),
	})
}

func (h *CommitmentHandler) ListByStudent(c echo.Context) error {
	studentID := c.Param("id")
	dates, err := h.svc.ListByStudent(c.Request().Context(), studentID)
	if err != nil {
		// A failed lookup is not an empty calendar.
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch commitments"))
	}
	return c.JSON(http.StatusOK, CommitmentListResponse{StudentID: studentID, Dates: dates})
}
