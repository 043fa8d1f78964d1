package service

import (
	"context"
	"errors"

	"libraryhub/internal/httpapi/models"
	"libraryhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

type BookService interface {
	List(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, bookID int64) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) error
}

type bookService struct {
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository) BookService {
	return &bookService{repo: repo}
}

func (s *bookService) List(ctx context.Context) ([]models.Book, error) {
	return s.repo.List(ctx)
}

func (s *bookService) GetByID(ctx context.Context, bookID int64) (*models.Book, error) {
	book, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *bookService) Create(ctx context.Context, book *models.Book) error {
	return s.repo.Create(ctx, book)
}
