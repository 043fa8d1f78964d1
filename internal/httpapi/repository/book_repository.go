package repository

import (
	"context"
	"errors"
	"fmt"

	"libraryhub/internal/httpapi/models"

	"gorm.io/gorm"
)

// ErrNoCopies is returned by ReserveCopy when the book has no copies left.
var ErrNoCopies = errors.New("no copies available")

type BookRepository interface {
	GetByID(ctx context.Context, bookID int64) (*models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
	Create(ctx context.Context, book *models.Book) error

	// ReserveCopy decrements the book's quantity by one, but only when a
	// copy is actually left. The decrement and the availability flip happen
	// in a single conditional UPDATE, so two concurrent approvals of the
	// last copy cannot both succeed.
	ReserveCopy(ctx context.Context, bookID int64) error

	// ReleaseCopy is the inverse increment, used when an approval is undone.
	ReleaseCopy(ctx context.Context, bookID int64) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) GetByID(ctx context.Context, bookID int64) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, bookID).Error; err != nil {
		return nil, fmt.Errorf("get book %d: %w", bookID, err)
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	book.Available = book.Quantity > 0
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *bookRepository) ReserveCopy(ctx context.Context, bookID int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ? AND quantity > 0", bookID).
		Updates(map[string]interface{}{
			"quantity":  gorm.Expr("quantity - 1"),
			"available": gorm.Expr("quantity - 1 > 0"),
		})

	if result.Error != nil {
		return fmt.Errorf("reserve copy of book %d: %w", bookID, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNoCopies
	}

	return nil
}

func (r *bookRepository) ReleaseCopy(ctx context.Context, bookID int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", bookID).
		Updates(map[string]interface{}{
			"quantity":  gorm.Expr("quantity + 1"),
			"available": true,
		})

	if result.Error != nil {
		return fmt.Errorf("release copy of book %d: %w", bookID, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("release copy of book %d: %w", bookID, gorm.ErrRecordNotFound)
	}

	return nil
}
