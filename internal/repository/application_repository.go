package repository

import (
	"context"
	"errors"

	"github.com/Shunsuke0205/inspirit-for-supporter/internal/model"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *model.ScholarshipApplication) error
	FindByID(ctx context.Context, id string, activeOnly bool) (*model.ScholarshipApplication, error)
	ListActive(ctx context.Context, limit int) ([]model.ScholarshipApplication, error)
	ListByOwner(ctx context.Context, userID string) ([]model.ScholarshipApplication, error)
	UpdateItemFieldsIfActive(ctx context.Context, id, userID string, fields map[string]interface{}) (int64, error)
	SoftDelete(ctx context.Context, id, userID string) (int64, error)
	SetDB(db *gorm.DB)
}

type applicationRepository struct {
	db *gorm.DB
}

var ErrDBNotReady = errors.New("database not initialized")

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// visible is the one place the soft-delete predicate lives. Every read path
// goes through it so deleted rows can never leak.
func visible(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

func (r *applicationRepository) Create(ctx context.Context, app *model.ScholarshipApplication) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id string, activeOnly bool) (*model.ScholarshipApplication, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	q := visible(r.db.WithContext(ctx)).Where("id = ?", id)
	if activeOnly {
		q = q.Where("status = ?", model.ApplicationStatusActive)
	}
	var app model.ScholarshipApplication
	if err := q.First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListActive(ctx context.Context, limit int) ([]model.ScholarshipApplication, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var apps []model.ScholarshipApplication
	if err := visible(r.db.WithContext(ctx)).
		Where("status = ?", model.ApplicationStatusActive).
		Order("created_at DESC").
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) ListByOwner(ctx context.Context, userID string) ([]model.ScholarshipApplication, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var apps []model.ScholarshipApplication
	if err := visible(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateItemFieldsIfActive edits item fields only while the listing is still
// active and owned by userID. Zero rows affected means the terms are already
// frozen (or the row is not the caller's to edit).
func (r *applicationRepository) UpdateItemFieldsIfActive(ctx context.Context, id, userID string, fields map[string]interface{}) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	res := visible(r.db.WithContext(ctx)).
		Model(&model.ScholarshipApplication{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, model.ApplicationStatusActive).
		Updates(fields)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *applicationRepository) SoftDelete(ctx context.Context, id, userID string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	res := visible(r.db.WithContext(ctx)).
		Model(&model.ScholarshipApplication{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_deleted", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *applicationRepository) SetDB(db *gorm.DB) {
	r.db = db
}
