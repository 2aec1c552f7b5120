package model

import "time"

// StudentCommitment marks one day on which a student filed an activity
// report. The (user_id, committed_date_jst) pair is unique: at most one
// commitment per student per JST calendar day.
type StudentCommitment struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement"`
	UserID           string    `gorm:"column:user_id;size:128;not null;uniqueIndex:idx_student_commitment_day,priority:1"`
	CommittedDateJST time.Time `gorm:"column:committed_date_jst;type:date;not null;uniqueIndex:idx_student_commitment_day,priority:2"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (StudentCommitment) TableName() string {
	return "student_commitments"
}
