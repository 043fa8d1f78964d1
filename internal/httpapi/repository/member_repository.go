package repository

import (
	"context"
	"errors"
	"fmt"

	"libraryhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type MemberRepository interface {
	GetByID(ctx context.Context, memberID int64) (*models.Member, error)

	// ResolveOrCreate finds the member with the given email, creating the
	// row when no match exists. Submissions arrive with an email and a
	// display name but not always a member id.
	ResolveOrCreate(ctx context.Context, email, name string) (*models.Member, error)
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) GetByID(ctx context.Context, memberID int64) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, memberID).Error; err != nil {
		return nil, fmt.Errorf("get member %d: %w", memberID, err)
	}
	return &member, nil
}

func (r *memberRepository) ResolveOrCreate(ctx context.Context, email, name string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).First(&member, "email = ?", email).Error
	if err == nil {
		return &member, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("resolve member by email: %w", err)
	}

	member = models.Member{Email: email, Name: name}
	if err := r.db.WithContext(ctx).Create(&member).Error; err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return &member, nil
}
