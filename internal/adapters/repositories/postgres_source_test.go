package repositories

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockSource(t *testing.T) (*PostgresSource, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresSource(db), mock
}

func expectLocationSpan(mock sqlmock.Sqlmock, n, lo, hi int) {
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "min", "max"}).AddRow(n, lo, hi))
}

func TestPostgresDistanceMatrixComplete(t *testing.T) {
	src, mock := newMockSource(t)
	expectLocationSpan(mock, 3, 0, 2)
	mock.ExpectQuery(`FROM distances`).WillReturnRows(
		sqlmock.NewRows([]string{"row_idx", "col_idx", "miles"}).
			AddRow(0, 0, 0.0).
			AddRow(1, 0, 7.2).
			AddRow(1, 1, 0.0).
			AddRow(2, 0, 3.8).
			AddRow(2, 1, 7.1).
			AddRow(2, 2, 0.0),
	)

	matrix, err := src.DistanceMatrix(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matrix) != 3 || matrix[1][0] != 7.2 || matrix[2][1] != 7.1 {
		t.Fatalf("matrix = %v", matrix)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresDistanceMatrixRejectsMissingCell(t *testing.T) {
	src, mock := newMockSource(t)
	expectLocationSpan(mock, 3, 0, 2)
	mock.ExpectQuery(`FROM distances`).WillReturnRows(
		sqlmock.NewRows([]string{"row_idx", "col_idx", "miles"}).AddRow(1, 0, 7.2),
	)

	matrix, err := src.DistanceMatrix(context.Background())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, matrix = %v, want ErrNotFound", err, matrix)
	}
}

func TestPostgresDistanceMatrixRejectsIndexGap(t *testing.T) {
	src, mock := newMockSource(t)
	expectLocationSpan(mock, 3, 0, 3)

	if _, err := src.DistanceMatrix(context.Background()); err == nil {
		t.Fatalf("expected error for location idx 0..3 with 3 locations")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
