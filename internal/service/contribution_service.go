package service

import (
	"context"
	"errors"

	"github.com/Shunsuke0205/inspirit-for-supporter/internal/model"
	"github.com/Shunsuke0205/inspirit-for-supporter/internal/repository"
	"gorm.io/gorm"
)

// ErrAlreadyCommitted means the application is not accepting a purchase:
// another supporter confirmed first, or the listing has moved on. Expected
// under concurrency, not an anomaly.
var ErrAlreadyCommitted = errors.New("already_committed")

type ContributionService interface {
	Confirm(ctx context.Context, applicationID, supporterUID string, itemPrice uint) (*model.SupporterContribution, error)
	ListBySupporter(ctx context.Context, supporterUID string) ([]model.ContributionView, error)
}

type contributionService struct {
	contribRepo repository.ContributionRepository
	appRepo     repository.ApplicationRepository
}

func NewContributionService(contribRepo repository.ContributionRepository, appRepo repository.ApplicationRepository) ContributionService {
	return &contributionService{contribRepo: contribRepo, appRepo: appRepo}
}

func (s *contributionService) Confirm(ctx context.Context, applicationID, supporterUID string, itemPrice uint) (*model.SupporterContribution, error) {
	if supporterUID == "" {
		return nil, errors.New("supporter is required")
	}
	if itemPrice == 0 {
		return nil, errors.New("item price must be positive")
	}
	app, err := s.appRepo.FindByID(ctx, applicationID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence(err)
	}
	if app.UserID == supporterUID {
		return nil, errors.New("cannot fund your own application")
	}
	if app.Status != model.ApplicationStatusActive {
		// No insert is attempted for listings that already left active.
		return nil, ErrAlreadyCommitted
	}

	c, err := s.contribRepo.ConfirmPurchase(ctx, applicationID, supporterUID, itemPrice)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyCommitted
		}
		return nil, persistence(err)
	}
	return c, nil
}

func (s *contributionService) ListBySupporter(ctx context.Context, supporterUID string) ([]model.ContributionView, error) {
	if supporterUID == "" {
		return nil, errors.New("supporter is required")
	}
	views, err := s.contribRepo.ListBySupporter(ctx, supporterUID)
	if err != nil {
		return nil, persistence(err)
	}
	return views, nil
}
