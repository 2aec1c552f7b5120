package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/Shunsuke0205/inspirit-for-supporter/internal/model"
	"github.com/Shunsuke0205/inspirit-for-supporter/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")
var ErrForbidden = errors.New("forbidden")

// ErrTermsFrozen means the application has left "active": its item fields are
// a purchase record now and can no longer be edited.
var ErrTermsFrozen = errors.New("purchase terms are frozen")

type CreateApplicationInput struct {
	Title                  string
	ItemDescription        string
	ItemPrice              uint
	RequestedAmount        uint
	Enthusiasm             string
	LongTermGoal           string
	AmazonWishlistURL      *string
	EntireReportPeriodDays uint
	ReportIntervalDays     uint
}

type UpdateApplicationInput struct {
	Title             string
	ItemDescription   string
	ItemPrice         uint
	RequestedAmount   uint
	Enthusiasm        string
	LongTermGoal      string
	AmazonWishlistURL *string
}

type ApplicationService interface {
	Create(ctx context.Context, userID string, in CreateApplicationInput) (*model.ScholarshipApplication, error)
	Get(ctx context.Context, id string, activeOnly bool) (*model.ScholarshipApplication, error)
	ListActive(ctx context.Context, limit int) ([]model.ScholarshipApplication, error)
	ListMine(ctx context.Context, userID string) ([]model.ScholarshipApplication, error)
	UpdateItem(ctx context.Context, id, userID string, in UpdateApplicationInput) (*model.ScholarshipApplication, error)
	Delete(ctx context.Context, id, userID string) error
}

type applicationService struct {
	repo repository.ApplicationRepository
}

func NewApplicationService(repo repository.ApplicationRepository) ApplicationService {
	return &applicationService{repo: repo}
}

func validateWishlistURL(raw *string) error {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	u, err := url.Parse(strings.TrimSpace(*raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("wishlist url must be http(s)")
	}
	return nil
}

func (s *applicationService) Create(ctx context.Context, userID string, in CreateApplicationInput) (*model.ScholarshipApplication, error) {
	if userID == "" {
		return nil, errors.New("user is required")
	}
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.ItemDescription)
	if title == "" || len(title) > 120 {
		return nil, errors.New("invalid title")
	}
	if description == "" {
		return nil, errors.New("invalid item description")
	}
	if in.ItemPrice == 0 {
		return nil, errors.New("item price must be positive")
	}
	if in.RequestedAmount == 0 {
		return nil, errors.New("requested amount must be positive")
	}
	if in.EntireReportPeriodDays == 0 || in.ReportIntervalDays == 0 {
		return nil, errors.New("report period and interval must be positive")
	}
	if in.ReportIntervalDays > in.EntireReportPeriodDays {
		return nil, errors.New("report interval cannot exceed the report period")
	}
	if err := validateWishlistURL(in.AmazonWishlistURL); err != nil {
		return nil, err
	}

	app := &model.ScholarshipApplication{
		ID:                     uuid.NewString(),
		UserID:                 userID,
		Title:                  title,
		ItemDescription:        description,
		ItemPrice:              in.ItemPrice,
		RequestedAmount:        in.RequestedAmount,
		Enthusiasm:             strings.TrimSpace(in.Enthusiasm),
		LongTermGoal:           strings.TrimSpace(in.LongTermGoal),
		AmazonWishlistURL:      in.AmazonWishlistURL,
		Status:                 model.ApplicationStatusActive,
		EntireReportPeriodDays: in.EntireReportPeriodDays,
		ReportIntervalDays:     in.ReportIntervalDays,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, persistence(err)
	}
	return app, nil
}

func (s *applicationService) Get(ctx context.Context, id string, activeOnly bool) (*model.ScholarshipApplication, error) {
	app, err := s.repo.FindByID(ctx, id, activeOnly)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence(err)
	}
	return app, nil
}

func (s *applicationService) ListActive(ctx context.Context, limit int) ([]model.ScholarshipApplication, error) {
	if limit <= 0 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}
	apps, err := s.repo.ListActive(ctx, limit)
	if err != nil {
		return nil, persistence(err)
	}
	return apps, nil
}

func (s *applicationService) ListMine(ctx context.Context, userID string) ([]model.ScholarshipApplication, error) {
	if userID == "" {
		return nil, errors.New("user is required")
	}
	apps, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, persistence(err)
	}
	return apps, nil
}

func (s *applicationService) UpdateItem(ctx context.Context, id, userID string, in UpdateApplicationInput) (*model.ScholarshipApplication, error) {
	app, err := s.Get(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if app.UserID != userID {
		return nil, ErrForbidden
	}
	if app.Status != model.ApplicationStatusActive {
		return nil, ErrTermsFrozen
	}
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.ItemDescription)
	if title == "" || len(title) > 120 {
		return nil, errors.New("invalid title")
	}
	if description == "" {
		return nil, errors.New("invalid item description")
	}
	if in.ItemPrice == 0 {
		return nil, errors.New("item price must be positive")
	}
	if in.RequestedAmount == 0 {
		return nil, errors.New("requested amount must be positive")
	}
	if err := validateWishlistURL(in.AmazonWishlistURL); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"title":               title,
		"item_description":    description,
		"item_price":          in.ItemPrice,
		"requested_amount":    in.RequestedAmount,
		"enthusiasm":          strings.TrimSpace(in.Enthusiasm),
		"long_term_goal":      strings.TrimSpace(in.LongTermGoal),
		"amazon_wishlist_url": in.AmazonWishlistURL,
	}
	rows, err := s.repo.UpdateItemFieldsIfActive(ctx, id, userID, fields)
	if err != nil {
		return nil, persistence(err)
	}
	if rows == 0 {
		// Lost the race with a purchase confirmation between the read above
		// and the conditional update.
		return nil, ErrTermsFrozen
	}
	return s.Get(ctx, id, false)
}

func (s *applicationService) Delete(ctx context.Context, id, userID string) error {
	app, err := s.Get(ctx, id, false)
	if err != nil {
		return err
	}
	if app.UserID != userID {
		return ErrForbidden
	}
	rows, err := s.repo.SoftDelete(ctx, id, userID)
	if err != nil {
		return persistence(err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
