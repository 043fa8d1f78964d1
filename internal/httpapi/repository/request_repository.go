package repository

import (
	"context"
	"fmt"
	"time"

	"libraryhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type RequestRepository interface {
	Create(ctx context.Context, request *models.BookRequest) error
	GetByID(ctx context.Context, requestID string) (*models.BookRequest, error)
	List(ctx context.Context) ([]models.BookRequest, error)
	UpdateStatus(ctx context.Context, requestID string, status models.RequestStatus, processedDate time.Time) error
	Delete(ctx context.Context, requestID string) error
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *models.BookRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("create book request: %w", err)
	}
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, requestID string) (*models.BookRequest, error) {
	var request models.BookRequest
	if err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Book").
		First(&request, "id = ?", requestID).Error; err != nil {
		return nil, fmt.Errorf("get request %s: %w", requestID, err)
	}
	return &request, nil
}

func (r *requestRepository) List(ctx context.Context) ([]models.BookRequest, error) {
	var requests []models.BookRequest
	if err := r.db.WithContext(ctx).
		Order("request_date DESC").
		Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, requestID string, status models.RequestStatus, processedDate time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.BookRequest{}).
		Where("id = ?", requestID).
		Updates(map[string]interface{}{
			"status":         status.String(),
			"processed_date": processedDate,
		})

	if result.Error != nil {
		return fmt.Errorf("update request %s status: %w", requestID, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("update request %s status: %w", requestID, gorm.ErrRecordNotFound)
	}

	return nil
}

func (r *requestRepository) Delete(ctx context.Context, requestID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", requestID).
		Delete(&models.BookRequest{})

	if result.Error != nil {
		return fmt.Errorf("delete request %s: %w", requestID, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("delete request %s: %w", requestID, gorm.ErrRecordNotFound)
	}

	return nil
}
