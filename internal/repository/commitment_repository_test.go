package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Shunsuke0205/inspirit-for-supporter/internal/model"
)

func TestCommitmentCreateInsertsOneRow(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommitmentRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `student_commitments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	c := &model.StudentCommitment{
		UserID:           "student-1",
		CommittedDateJST: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCommitmentCreateSurfacesUniqueViolation(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommitmentRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `student_commitments`").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry"))
	mock.ExpectRollback()

	c := &model.StudentCommitment{
		UserID:           "student-1",
		CommittedDateJST: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(context.Background(), c); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestCommitmentListByStudentDescending(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommitmentRepository(gdb)

	rows := sqlmock.NewRows([]string{"id", "user_id", "committed_date_jst"}).
		AddRow(2, "student-1", time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)).
		AddRow(1, "student-1", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery("SELECT .* FROM `student_commitments` WHERE user_id = \\? ORDER BY committed_date_jst DESC").
		WithArgs("student-1").
		WillReturnRows(rows)

	list, err := repo.ListByStudent(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if !list[0].CommittedDateJST.After(list[1].CommittedDateJST) {
		t.Fatalf("order = [%v %v], want newest first", list[0].CommittedDateJST, list[1].CommittedDateJST)
	}
}
