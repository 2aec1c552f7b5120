package model

import "time"

type TransactionStatus string

const (
	TransactionStatusPurchased TransactionStatus = "purchased"
	TransactionStatusReceived  TransactionStatus = "received"
)

// SupporterContribution records a supporter's self-reported purchase for an
// application. ItemPrice is a snapshot taken at confirmation time and is
// never rewritten, regardless of later edits to the application. The unique
// index on application_id caps the ledger at one contribution per listing.
type SupporterContribution struct {
	ID                uint64            `gorm:"primaryKey;autoIncrement"`
	ApplicationID     string            `gorm:"column:application_id;size:36;uniqueIndex;not null"`
	SupporterID       string            `gorm:"column:supporter_id;size:128;index;not null"`
	ItemPrice         uint              `gorm:"column:item_price;not null"`
	TransactionStatus TransactionStatus `gorm:"column:transaction_status;size:32;not null"`
	PurchasedAt       time.Time         `gorm:"column:purchased_at;autoCreateTime"`
	ReceivedAt        *time.Time        `gorm:"column:received_at"`
}

func (SupporterContribution) TableName() string {
	return "supporter_contributions"
}

// ContributionView is one row of a supporter's history, joined with the
// funded application.
type ContributionView struct {
	ApplicationID     string            `gorm:"column:application_id"`
	ApplicationTitle  string            `gorm:"column:application_title"`
	ItemName          string            `gorm:"column:item_name"`
	ItemPrice         uint              `gorm:"column:item_price"`
	TransactionStatus TransactionStatus `gorm:"column:transaction_status"`
	ApplicationStatus ApplicationStatus `gorm:"column:application_status"`
	PurchasedAt       time.Time         `gorm:"column:purchased_at"`
	StudentUserID     string            `gorm:"column:student_user_id"`
}
