package repository

import (
	"context"
	"fmt"
	"time"

	"libraryhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type BorrowRepository interface {
	Create(ctx context.Context, record *models.BorrowRecord) error

	// DeleteByDueDate removes records matching exactly (member, book, due date).
	// Returns the number of rows removed.
	DeleteByDueDate(ctx context.Context, memberID, bookID int64, dueDate time.Time) (int64, error)

	// DeleteBorrowed removes records matching (member, book, status=borrowed).
	// Fallback for legacy records that never stored a due date.
	DeleteBorrowed(ctx context.Context, memberID, bookID int64) (int64, error)

	ListOverdue(ctx context.Context, now time.Time) ([]models.BorrowRecord, error)
}

type borrowRepository struct {
	db *gorm.DB
}

func NewBorrowRepository(db *gorm.DB) BorrowRepository {
	return &borrowRepository{db: db}
}

func (r *borrowRepository) Create(ctx context.Context, record *models.BorrowRecord) error {
	if record.Status == "" {
		record.Status = models.BorrowStatusBorrowed
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create borrow record: %w", err)
	}
	return nil
}

func (r *borrowRepository) DeleteByDueDate(ctx context.Context, memberID, bookID int64, dueDate time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("member_id = ? AND book_id = ? AND due_date = ?", memberID, bookID, dueDate).
		Delete(&models.BorrowRecord{})

	if result.Error != nil {
		return 0, fmt.Errorf("delete borrow record by due date: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *borrowRepository) DeleteBorrowed(ctx context.Context, memberID, bookID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("member_id = ? AND book_id = ? AND status = ?", memberID, bookID, models.BorrowStatusBorrowed).
		Delete(&models.BorrowRecord{})

	if result.Error != nil {
		return 0, fmt.Errorf("delete borrowed record: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *borrowRepository) ListOverdue(ctx context.Context, now time.Time) ([]models.BorrowRecord, error) {
	var records []models.BorrowRecord
	if err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Book").
		Where("status = ? AND due_date < ?", models.BorrowStatusBorrowed, now).
		Order("due_date ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list overdue records: %w", err)
	}
	return records, nil
}
