package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/victortedesco/inventory-management/internal/domain"
	"github.com/victortedesco/inventory-management/internal/dto"
	"github.com/victortedesco/inventory-management/internal/repository"
)

type CategoryService interface {
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	Create(ctx context.Context, actor string, input dto.CategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, actor string, id uuid.UUID, input dto.CategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error

	AddProduct(ctx context.Context, actor string, categoryID, productID uuid.UUID) error
	RemoveProduct(ctx context.Context, actor string, categoryID, productID uuid.UUID) error
}

type categoryService struct {
	newUnitOfWork repository.UnitOfWorkFactory
}

func NewCategoryService(newUnitOfWork repository.UnitOfWorkFactory) CategoryService {
	return &categoryService{newUnitOfWork: newUnitOfWork}
}

func validateCategory(input dto.CategoryRequest) (string, error) {
	name := strings.TrimSpace(input.Name)
	v := &validator{}
	v.check(name != "", "name is required")
	v.check(len(name) <= 100, "name must have at most 100 characters")
	return name, v.err()
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.newUnitOfWork().Categories().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, *toCategoryResponse(&categories[i]))
	}
	return out, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	category, err := s.newUnitOfWork().Categories().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toCategoryResponse(category), nil
}

func (s *categoryService) Create(ctx context.Context, actor string, input dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name, err := validateCategory(input)
	if err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()
	category := domain.NewCategory(name, actor)
	uow.Add(category)
	if err := uow.Commit(ctx, actor); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

func (s *categoryService) Update(ctx context.Context, actor string, id uuid.UUID, input dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name, err := validateCategory(input)
	if err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()
	category, err := uow.Categories().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if category.Name != name {
		category.Name = name
		category.UpdatedBy = actor
	}
	if err := uow.Commit(ctx, actor); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete removes the category and detaches its products in the same commit.
func (s *categoryService) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	uow := s.newUnitOfWork()
	category, err := uow.Categories().FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}

	products, err := uow.Products().ListByCategory(ctx, id)
	if err != nil {
		return err
	}
	for _, p := range products {
		product, err := uow.Products().FindByID(ctx, p.ID)
		if err != nil {
			return notFound(err)
		}
		product.CategoryID = nil
		product.UpdatedBy = actor
	}

	uow.Remove(category)
	return uow.Commit(ctx, actor)
}

func (s *categoryService) AddProduct(ctx context.Context, actor string, categoryID, productID uuid.UUID) error {
	uow := s.newUnitOfWork()
	if _, err := uow.Categories().FindByID(ctx, categoryID); err != nil {
		return notFound(err)
	}
	product, err := uow.Products().FindByID(ctx, productID)
	if err != nil {
		return notFound(err)
	}

	if product.CategoryID != nil && *product.CategoryID == categoryID {
		return nil
	}
	id := categoryID
	product.CategoryID = &id
	product.UpdatedBy = actor
	return uow.Commit(ctx, actor)
}

func (s *categoryService) RemoveProduct(ctx context.Context, actor string, categoryID, productID uuid.UUID) error {
	uow := s.newUnitOfWork()
	if _, err := uow.Categories().FindByID(ctx, categoryID); err != nil {
		return notFound(err)
	}
	product, err := uow.Products().FindByID(ctx, productID)
	if err != nil {
		return notFound(err)
	}

	if product.CategoryID == nil || *product.CategoryID != categoryID {
		return &ValidationError{Messages: []string{"product does not belong to this category"}}
	}
	product.CategoryID = nil
	product.UpdatedBy = actor
	return uow.Commit(ctx, actor)
}

func toCategoryResponse(c *domain.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedBy: c.CreatedBy,
		UpdatedBy: c.UpdatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
