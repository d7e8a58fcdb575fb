package repository

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/victortedesco/inventory-management/internal/domain"
	"gorm.io/gorm"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, name string) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.Product, error)
}

type productRepository struct {
	db  *gorm.DB
	uow *unitOfWork
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product := &domain.Product{}

	if err := r.db.WithContext(ctx).First(product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Printf("find product by id error: %v", err)
		return nil, errors.New("failed to find product by ID")
	}

	r.uow.Attach(product)
	return product, nil
}

// List returns every product, or those whose name contains name when it
// is not empty.
func (r *productRepository) List(ctx context.Context, name string) ([]domain.Product, error) {
	var products []domain.Product

	q := r.db.WithContext(ctx).Order("name ASC")
	if name = strings.TrimSpace(name); name != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\'", containsPattern(name))
	}
	if err := q.Find(&products).Error; err != nil {
		log.Printf("list products error: %v", err)
		return nil, errors.New("failed to list products")
	}
	return products, nil
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("name ASC").Find(&products).Error; err != nil {
		log.Printf("list products by category error: %v", err)
		return nil, errors.New("failed to list products by category")
	}
	return products, nil
}
