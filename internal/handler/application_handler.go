package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Shunsuke0205/inspirit-for-supporter/internal/model"
	"github.com/Shunsuke0205/inspirit-for-supporter/internal/service"
	"github.com/labstack/echo/v4"
)

type ApplicationHandler struct {
	svc service.ApplicationService
}

func NewApplicationHandler(svc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

type ApplicationResponse struct {
	ID                     string  `json:"id"`
	UserID                 string  `json:"userId"`
	Title                  string  `json:"title"`
	ItemDescription        string  `json:"itemDescription"`
	ItemPrice              uint    `json:"itemPrice"`
	RequestedAmount        uint    `json:"requestedAmount"`
	Enthusiasm             string  `json:"enthusiasm,omitempty"`
	LongTermGoal           string  `json:"longTermGoal,omitempty"`
	AmazonWishlistURL      *string `json:"amazonWishlistUrl,omitempty"`
	Status                 string  `json:"status"`
	EntireReportPeriodDays uint    `json:"entireReportPeriodDays"`
	ReportIntervalDays     uint    `json:"reportIntervalDays"`
	LastReportedAt         *string `json:"lastReportedAt,omitempty"`
	CreatedAt              string  `json:"createdAt"`
	UpdatedAt              string  `json:"updatedAt"`
}

type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

type CreateApplicationRequest struct {
	Title                  string  `json:"title"`
	ItemDescription        string  `json:"itemDescription"`
	ItemPrice              uint    `json:"itemPrice"`
	RequestedAmount        uint    `json:"requestedAmount"`
	Enthusiasm             string  `json:"enthusiasm"`
	LongTermGoal           string  `json:"longTermGoal"`
	AmazonWishlistURL      *string `json:"amazonWishlistUrl"`
	EntireReportPeriodDays uint    `json:"entireReportPeriodDays"`
	ReportIntervalDays     uint    `json:"reportIntervalDays"`
}

type UpdateApplicationRequest struct {
	Title             string  `json:"title"`
	ItemDescription   string  `json:"itemDescription"`
	ItemPrice         uint    `json:"itemPrice"`
	RequestedAmount   uint    `json:"requestedAmount"`
	Enthusiasm        string  `json:"enthusiasm"`
	LongTermGoal      string  `json:"longTermGoal"`
	AmazonWishlistURL *string `json:"amazonWishlistUrl"`
}

func toApplicationResponse(app *model.ScholarshipApplication) ApplicationResponse {
	var lastReportedAt *string
	if app.LastReportedAt != nil {
		val := app.LastReportedAt.Format(time.RFC3339)
		lastReportedAt = &val
	}
	return ApplicationResponse{
		ID:                     app.ID,
		UserID:                 app.UserID,
		Title:                  app.Title,
		ItemDescription:        app.ItemDescription,
		ItemPrice:              app.ItemPrice,
		RequestedAmount:        app.RequestedAmount,
		Enthusiasm:             app.Enthusiasm,
		LongTermGoal:           app.LongTermGoal,
		AmazonWishlistURL:      app.AmazonWishlistURL,
		Status:                 string(app.Status),
		EntireReportPeriodDays: app.EntireReportPeriodDays,
		ReportIntervalDays:     app.ReportIntervalDays,
		LastReportedAt:         lastReportedAt,
		CreatedAt:              app.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              app.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *ApplicationHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req CreateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	app, err := h.svc.Create(c.Request().Context(), uid, service.CreateApplicationInput{
		Title:                  req.Title,
		ItemDescription:        req.ItemDescription,
		ItemPrice:              req.ItemPrice,
		RequestedAmount:        req.RequestedAmount,
		Enthusiasm:             req.Enthusiasm,
		LongTermGoal:           req.LongTermGoal,
		AmazonWishlistURL:      req.AmazonWishlistURL,
		EntireReportPeriodDays: req.EntireReportPeriodDays,
		ReportIntervalDays:     req.ReportIntervalDays,
	})
	if err != nil {
		if errors.Is(err, service.ErrPersistence) {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to create application"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toApplicationResponse(app))
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	id := c.Param("id")
	// Discovery hides non-active listings; ?include=all keeps historical
	// detail pages working for past supporters.
	activeOnly := c.QueryParam("include") != "all"
	app, err := h.svc.Get(c.Request().Context(), id, activeOnly)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "application not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch application"))
	}
	return c.JSON(http.StatusOK, toApplicationResponse(app))
}

func (h *ApplicationHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	apps, err := h.svc.ListActive(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch applications"))
	}
	return c.JSON(http.StatusOK, toApplicationListResponse(apps))
}

func (h *ApplicationHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	apps, err := h.svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch applications"))
	}
	return c.JSON(http.StatusOK, toApplicationListResponse(apps))
}

func (h *ApplicationHandler) Update(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req UpdateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	app, err := h.svc.UpdateItem(c.Request().Context(), c.Param("id"), uid, service.UpdateApplicationInput{
		Title:             req.Title,
		ItemDescription:   req.ItemDescription,
		ItemPrice:         req.ItemPrice,
		RequestedAmount:   req.RequestedAmount,
		Enthusiasm:        req.Enthusiasm,
		LongTermGoal:      req.LongTermGoal,
		AmazonWishlistURL: req.AmazonWishlistURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "application not found"))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
		case errors.Is(err, service.ErrTermsFrozen):
			return c.JSON(http.StatusConflict, NewErrorResponse("terms_frozen", "purchase terms are frozen"))
		case errors.Is(err, service.ErrPersistence):
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update application"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusOK, toApplicationResponse(app))
}

func (h *ApplicationHandler) Delete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	err := h.svc.Delete(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "application not found"))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete application"))
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func toApplicationListResponse(apps []model.ScholarshipApplication) ApplicationListResponse {
	resp := ApplicationListResponse{Applications: make([]ApplicationResponse, 0, len(apps))}
	for i := range apps {
		resp.Applications = append(resp.Applications, toApplicationResponse(&apps[i]))
	}
	return resp
}
