package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/victortedesco/inventory-management/internal/domain"
	"gorm.io/gorm"
)

type BoxRepository interface {
	// FindByID loads the box with its product lines and tracks all of them.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Box, error)
	List(ctx context.Context) ([]domain.Box, error)
}

type boxRepository struct {
	db  *gorm.DB
	uow *unitOfWork
}

func (r *boxRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Box, error) {
	box := &domain.Box{}

	err := r.db.WithContext(ctx).
		Preload("Products.Product").
		First(box, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Printf("find box by id error: %v", err)
		return nil, errors.New("failed to find box by ID")
	}

	r.uow.Attach(box)
	for i := range box.Products {
		r.uow.Attach(&box.Products[i])
	}
	return box, nil
}

func (r *boxRepository) List(ctx context.Context) ([]domain.Box, error) {
	var boxes []domain.Box
	err := r.db.WithContext(ctx).
		Preload("Products.Product").
		Order("name ASC").
		Find(&boxes).Error
	if err != nil {
		log.Printf("list boxes error: %v", err)
		return nil, errors.New("failed to list boxes")
	}
	return boxes, nil
}
