package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/victortedesco/inventory-management/internal/domain"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type categoryRepository struct {
	db  *gorm.DB
	uow *unitOfWork
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category := &domain.Category{}

	if err := r.db.WithContext(ctx).First(category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Printf("find category by id error: %v", err)
		return nil, errors.New("failed to find category by ID")
	}

	r.uow.Attach(category)
	return category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		log.Printf("list categories error: %v", err)
		return nil, errors.New("failed to list categories")
	}
	return categories, nil
}
