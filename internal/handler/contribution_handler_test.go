package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Shunsuke0205/inspirit-for-supporter/internal/model"
	"github.com/Shunsuke0205/inspirit-for-supporter/internal/service"
	"github.com/labstack/echo/v4"
)

type fakeContributionService struct {
	confirmErr error
	views      []model.ContributionView
	listErr    error
}

func (f *fakeContributionService) Confirm(ctx context.Context, applicationID, supporterUID string, itemPrice uint) (*model.SupporterContribution, error) {
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return &model.SupporterContribution{
		ID:                1,
		ApplicationID:     applicationID,
		SupporterID:       supporterUID,
		ItemPrice:         itemPrice,
		TransactionStatus: model.TransactionStatusPurchased,
	}, nil
}

func (f *fakeContributionService) ListBySupporter(ctx context.Context, supporterUID string) ([]model.ContributionView, error) {
	return f.views, f.listErr
}

func newConfirmContext(t *testing.T, uid, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/applications/app-1/purchase", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("app-1")
	if uid != "" {
		c.Set("uid", uid)
	}
	return c, rec
}

func TestConfirmRequiresAuthenticatedCaller(t *testing.T) {
	h := NewContributionHandler(&fakeContributionService{})
	c, rec := newConfirmContext(t, "", `{"itemPrice":3000}`)

	if err := h.Confirm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
}

func TestConfirmReturnsCreated(t *testing.T) {
	h := NewContributionHandler(&fakeContributionService{})
	c, rec := newConfirmContext(t, "supporter-1", `{"itemPrice":3000}`)

	if err := h.Confirm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, want 201", rec.Code)
	}
	var resp ContributionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.ItemPrice != 3000 || resp.TransactionStatus != "purchased" {
		t.Fatalf("resp = %+v, want purchased at 3000", resp)
	}
}

func TestConfirmLostRaceIsConflictNotGenericFailure(t *testing.T) {
	h := NewContributionHandler(&fakeContributionService{confirmErr: service.ErrAlreadyCommitted})
	c, rec := newConfirmContext(t, "supporter-2", `{"itemPrice":3000}`)

	if err := h.Confirm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("code = %d, want 409", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error.Code != "already_committed" {
		t.Fatalf("code = %q, want already_committed", resp.Error.Code)
	}
}

func TestConfirmHidesStorageErrorDetails(t *testing.T) {
	h := NewContributionHandler(&fakeContributionService{
		confirmErr: service.ErrPersistence,
	})
	c, rec := newConfirmContext(t, "supporter-1", `{"itemPrice":3000}`)

	if err := h.Confirm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "sql") || strings.Contains(rec.Body.String(), "gorm") {
		t.Fatalf("storage detail leaked: %s", rec.Body.String())
	}
}

func TestConfirmMissingApplicationIsNotFound(t *testing.T) {
	h := NewContributionHandler(&fakeContributionService{confirmErr: service.ErrNotFound})
	c, rec := newConfirmContext(t, "supporter-1", `{"itemPrice":3000}`)

	if err := h.Confirm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", rec.Code)
	}
}

func TestListMineShapesJoinedRows(t *testing.T) {
	h := NewContributionHandler(&fakeContributionService{views: []model.ContributionView{
		{
			ApplicationID:     "app-1",
			ApplicationTitle:  "英検の単語帳",
			ItemName:          "でる順パス単",
			ItemPrice:         1980,
			TransactionStatus: model.TransactionStatusPurchased,
			ApplicationStatus: model.ApplicationStatusPending,
			StudentUserID:     "student-1",
		},
	}})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me/contributions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "supporter-1")

	if err := h.ListMine(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	var resp ContributionListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Contributions) != 1 {
		t.Fatalf("len = %d, want 1", len(resp.Contributions))
	}
	got := resp.Contributions[0]
	if got.ApplicationStatus != "pending" || got.StudentUserID != "student-1" {
		t.Fatalf("row = %+v", got)
	}
}
