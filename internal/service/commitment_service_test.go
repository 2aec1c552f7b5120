package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Shunsuke0205/inspirit-for-supporter/internal/model"
	"gorm.io/gorm"
)

type fakeCommitmentRepo struct {
	createErr error
	created   []*model.StudentCommitment
	list      []model.StudentCommitment
	listErr   error
}

func (f *fakeCommitmentRepo) Create(ctx context.Context, c *model.StudentCommitment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, c)
	return nil
}

func (f *fakeCommitmentRepo) ListByStudent(ctx context.Context, userID string) ([]model.StudentCommitment, error) {
	return f.list, f.listErr
}

func (f *fakeCommitmentRepo) SetDB(db *gorm.DB) {}

func TestReportUsesJSTCalendarDay(t *testing.T) {
	repo := &fakeCommitmentRepo{}
	svc := &commitmentService{repo: repo, now: func() time.Time {
		// 2024-05-01T23:30Z is already 2024-05-02 in JST.
		return time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)
	}}

	c, err := svc.Report(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.CommittedDateJST.Format("2006-01-02"); got != "2024-05-02" {
		t.Fatalf("date = %s, want 2024-05-02", got)
	}
}

// The mysql driver renders outgoing instants in the connection location
// (loc=UTC per BuildDSN) before the DATE column truncates them. Two reports
// on the same JST day that straddle UTC midnight must therefore serialize to
// one and the same date, or the per-day unique index never fires.
func TestReportDateSurvivesConnectionZoneConversion(t *testing.T) {
	instants := []struct {
		name string
		now  time.Time
	}{
		{"07:00 JST, previous day in UTC", time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC)},
		{"10:00 JST, same day in UTC", time.Date(2024, 5, 2, 1, 0, 0, 0, time.UTC)},
	}
	for _, tt := range instants {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeCommitmentRepo{}
			svc := &commitmentService{repo: repo, now: func() time.Time { return tt.now }}

			c, err := svc.Report(context.Background(), "student-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			wire := c.CommittedDateJST.In(time.UTC).Format("2006-01-02 15:04:05")
			if wire != "2024-05-02 00:00:00" {
				t.Fatalf("serialized = %s, want 2024-05-02 00:00:00", wire)
			}
		})
	}
}

func TestReportDuplicateDayIsNotASilentOverwrite(t *testing.T) {
	repo := &fakeCommitmentRepo{createErr: gorm.ErrDuplicatedKey}
	svc := NewCommitmentService(repo)

	_, err := svc.Report(context.Background(), "student-1")
	if !errors.Is(err, ErrAlreadyReported) {
		t.Fatalf("err = %v, want ErrAlreadyReported", err)
	}
}

func TestListByStudentReturnsDescendingDateStrings(t *testing.T) {
	repo := &fakeCommitmentRepo{list: []model.StudentCommitment{
		{UserID: "student-1", CommittedDateJST: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)},
		{UserID: "student-1", CommittedDateJST: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}}
	svc := NewCommitmentService(repo)

	dates, err := svc.ListByStudent(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2024-05-03", "2024-05-01"}
	if len(dates) != len(want) {
		t.Fatalf("len = %d, want %d", len(dates), len(want))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
}

func TestListByStudentStoreFailureIsNotAnEmptyFeed(t *testing.T) {
	repo := &fakeCommitmentRepo{listErr: errors.New("connection refused")}
	svc := NewCommitmentService(repo)

	dates, err := svc.ListByStudent(context.Background(), "student-1")
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}
	if dates != nil {
		t.Fatalf("dates = %v, want nil on failure", dates)
	}
}

func TestListByStudentEmptyFeedIsSuccess(t *testing.T) {
	svc := NewCommitmentService(&fakeCommitmentRepo{})
	dates, err := svc.ListByStudent(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 0 {
		t.Fatalf("len = %d, want 0", len(dates))
	}
}
