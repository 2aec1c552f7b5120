package service

import (
	"context"
	"errors"
	"time"

	"github.com/Shunsuke0205/inspirit-for-supporter/internal/model"
	"github.com/Shunsuke0205/inspirit-for-supporter/internal/repository"
	"gorm.io/gorm"
)

// ErrAlreadyReported means a commitment row already exists for this student
// and JST day.
var ErrAlreadyReported = errors.New("already reported today")

var jst = time.FixedZone("JST", 9*60*60)

const commitmentDateLayout = "2006-01-02"

type CommitmentService interface {
	Report(ctx context.Context, userID string) (*model.StudentCommitment, error)
	ListByStudent(ctx context.Context, studentID string) ([]string, error)
}

type commitmentService struct {
	repo repository.CommitmentRepository
	now  func() time.Time
}

func NewCommitmentService(repo repository.CommitmentRepository) CommitmentService {
	return &commitmentService{repo: repo, now: time.Now}
}

func (s *commitmentService) Report(ctx context.Context, userID string) (*model.StudentCommitment, error) {
	if userID == "" {
		return nil, errors.New("user is required")
	}
	// The calendar day is decided in JST, but the instant is stored at UTC
	// midnight: the connection runs with loc=UTC, so the driver serializes
	// it unchanged and the DATE column keeps the JST day on any host zone.
	today := s.now().In(jst)
	c := &model.StudentCommitment{
		UserID:           userID,
		CommittedDateJST: time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReported
		}
		return nil, persistence(err)
	}
	return c, nil
}

// ListByStudent returns committed days as "2006-01-02" strings, newest
// first. A store failure is returned as-is; it is never folded into an
// empty feed.
func (s *commitmentService) ListByStudent(ctx context.Context, studentID string) ([]string, error) {
	if studentID == "" {
		return nil, errors.New("student is required")
	}
	commitments, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, persistence(err)
	}
	dates := make([]string, 0, len(commitments))
	for _, c := range commitments {
		dates = append(dates, c.CommittedDateJST.Format(commitmentDateLayout))
	}
	return dates, nil
}
