package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Shunsuke0205/inspirit-for-supporter/internal/model"
	"github.com/Shunsuke0205/inspirit-for-supporter/internal/service"
	"github.com/labstack/echo/v4"
)

type ContributionHandler struct {
	svc service.ContributionService
}

func NewContributionHandler(svc service.ContributionService) *ContributionHandler {
	return &ContributionHandler{svc: svc}
}

type ConfirmPurchaseRequest struct {
	ItemPrice uint `json:"itemPrice"`
}

type ContributionResponse struct {
	ID                uint64  `json:"id"`
	ApplicationID     string  `json:"applicationId"`
	SupporterID       string  `json:"supporterId"`
	ItemPrice         uint    `json:"itemPrice"`
	TransactionStatus string  `json:"transactionStatus"`
	PurchasedAt       string  `json:"purchasedAt"`
	ReceivedAt        *string `json:"receivedAt,omitempty"`
}

type ContributionViewResponse struct {
	ApplicationID     string `json:"applicationId"`
	ApplicationTitle  string `json:"applicationTitle"`
	ItemName          string `json:"itemName"`
	ItemPrice         uint   `json:"itemPrice"`
	TransactionStatus string `json:"transactionStatus"`
	ApplicationStatus string `json:"applicationStatus"`
	PurchasedAt       string `json:"purchasedAt"`
	StudentUserID     string `json:"studentUserId"`
}

type ContributionListResponse struct {
	Contributions []ContributionViewResponse `json:"contributions"`
}

func toContributionResponse(c *model.SupporterContribution) ContributionResponse {
	var receivedAt *string
	if c.ReceivedAt != nil {
		val := c.ReceivedAt.Format(time.RFC3339)
		receivedAt = &val
	}
	return ContributionResponse{
		ID:                c.ID,
		ApplicationID:     c.ApplicationID,
		SupporterID:       c.SupporterID,
		ItemPrice:         c.ItemPrice,
		TransactionStatus: string(c.TransactionStatus),
		PurchasedAt:       c.PurchasedAt.Format(time.RFC3339),
		ReceivedAt:        receivedAt,
	}
}

// Confirm records a supporter's self-reported purchase. A lost race gets its
// own response code so the client can tell "someone beat you to it" apart
// from a real failure.
func (h *ContributionHandler) Confirm(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req ConfirmPurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	contribution, err := h.svc.Confirm(c.Request().Context(), c.Param("id"), uid, req.ItemPrice)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "application not found"))
		case errors.Is(err, service.ErrAlreadyCommitted):
			return c.JSON(http.StatusConflict, NewErrorResponse("already_committed", "application already has a confirmed purchase"))
		case errors.Is(err, service.ErrPersistence):
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to record purchase"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusCreated, toContributionResponse(contribution))
}

func (h *ContributionHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	views, err := h.svc.ListBySupporter(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch contributions"))
	}
	resp := ContributionListResponse{Contributions: make([]ContributionViewResponse, 0, len(views))}
	for _, v := range views {
		resp.Contributions = append(resp.Contributions, ContributionViewResponse{
			ApplicationID:     v.ApplicationID,
			ApplicationTitle:  v.ApplicationTitle,
			ItemName:          v.ItemName,
			ItemPrice:         v.ItemPrice,
			TransactionStatus: string(v.TransactionStatus),
			ApplicationStatus: string(v.ApplicationStatus),
			PurchasedAt:       v.PurchasedAt.Format(time.RFC3339),
			StudentUserID:     v.StudentUserID,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
