package repository

import (
	"context"

	"github.com/Shunsuke0205/inspirit-for-supporter/internal/model"
	"gorm.io/gorm"
)

type CommitmentRepository interface {
	Create(ctx context.Context, c *model.StudentCommitment) error
	ListByStudent(ctx context.Context, userID string) ([]model.StudentCommitment, error)
	SetDB(db *gorm.DB)
}

type commitmentRepository struct {
	db *gorm.DB
}

func NewCommitmentRepository(db *gorm.DB) CommitmentRepository {
	return &commitmentRepository{db: db}
}

// Create relies on the composite unique index; a second commitment for the
// same student and day comes back as gorm.ErrDuplicatedKey, never as a
// silent overwrite.
func (r *commitmentRepository) Create(ctx context.Context, c *model.StudentCommitment) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commitmentRepository) ListByStudent(ctx context.Context, userID string) ([]model.StudentCommitment, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.StudentCommitment
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("committed_date_jst DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *commitmentRepository) SetDB(db *gorm.DB) {
	r.db = db
}
