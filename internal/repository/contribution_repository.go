package repository

import (
	"context"
	"errors"

	"github.com/Shunsuke0205/inspirit-for-supporter/internal/model"
	"gorm.io/gorm"
)

// ErrStatusConflict means the application was not in the expected status when
// the conditional update ran; under load this is a lost confirmation race.
var ErrStatusConflict = errors.New("application status conflict")

type ContributionRepository interface {
	ConfirmPurchase(ctx context.Context, applicationID, supporterID string, itemPrice uint) (*model.SupporterContribution, error)
	ListBySupporter(ctx context.Context, supporterID string) ([]model.ContributionView, error)
	SetDB(db *gorm.DB)
}

type contributionRepository struct {
	db *gorm.DB
}

func NewContributionRepository(db *gorm.DB) ContributionRepository {
	return &contributionRepository{db: db}
}

// ConfirmPurchase flips the application active → pending and inserts the
// contribution row as one transaction. The status flip is a compare-and-swap:
// zero rows affected means another supporter already won, and nothing is
// inserted. The unique index on application_id backstops the swap.
func (r *contributionRepository) ConfirmPurchase(ctx context.Context, applicationID, supporterID string, itemPrice uint) (*model.SupporterContribution, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	c := &model.SupporterContribution{
		ApplicationID:     applicationID,
		SupporterID:       supporterID,
		ItemPrice:         itemPrice,
		TransactionStatus: model.TransactionStatusPurchased,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ScholarshipApplication{}).
			Where("id = ? AND status = ? AND is_deleted = ?", applicationID, model.ApplicationStatusActive, false).
			Update("status", model.ApplicationStatusPending)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusConflict
		}
		return tx.Create(c).Error
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *contributionRepository) ListBySupporter(ctx context.Context, supporterID string) ([]model.ContributionView, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var views []model.ContributionView
	if err := r.db.WithContext(ctx).
		Table("supporter_contributions AS sc").
		Select("sc.application_id, a.title AS application_title, a.item_description AS item_name, sc.item_price, sc.transaction_status, a.status AS application_status, sc.purchased_at, a.user_id AS student_user_id").
		Joins("JOIN scholarship_applications AS a ON a.id = sc.application_id").
		Where("sc.supporter_id = ? AND a.is_deleted = ?", supporterID, false).
		Order("sc.purchased_at DESC, sc.id DESC").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *contributionRepository) SetDB(db *gorm.DB) {
	r.db = db
}
