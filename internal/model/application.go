package model

import "time"

type ApplicationStatus string

const (
	ApplicationStatusActive    ApplicationStatus = "active"
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusReporting ApplicationStatus = "reporting"
	ApplicationStatusCompleted ApplicationStatus = "completed"
)

// ScholarshipApplication is a student's sponsored-purchase request.
// Visible to supporters only while status is "active" and the row is not
// soft-deleted. Item fields are frozen once the status leaves "active".
type ScholarshipApplication struct {
	ID                     string            `gorm:"primaryKey;size:36"`
	UserID                 string            `gorm:"column:user_id;size:128;index;not null"`
	Title                  string            `gorm:"size:120;not null"`
	ItemDescription        string            `gorm:"column:item_description;type:text;not null"`
	ItemPrice              uint              `gorm:"column:item_price;not null"`
	RequestedAmount        uint              `gorm:"column:requested_amount;not null"`
	Enthusiasm             string            `gorm:"type:text"`
	LongTermGoal           string            `gorm:"column:long_term_goal;type:text"`
	AmazonWishlistURL      *string           `gorm:"column:amazon_wishlist_url;size:512"`
	Status                 ApplicationStatus `gorm:"column:status;size:32;not null;index"`
	EntireReportPeriodDays uint              `gorm:"column:entire_report_period_days;not null"`
	ReportIntervalDays     uint              `gorm:"column:report_interval_days;not null"`
	LastReportedAt         *time.Time        `gorm:"column:last_reported_at"`
	IsDeleted              bool              `gorm:"column:is_deleted;not null"`
	CreatedAt              time.Time         `gorm:"autoCreateTime"`
	UpdatedAt              time.Time         `gorm:"autoUpdateTime"`
}

func (ScholarshipApplication) TableName() string {
	return "scholarship_applications"
}
