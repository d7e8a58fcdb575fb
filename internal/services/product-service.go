package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/victortedesco/inventory-management/internal/domain"
	"github.com/victortedesco/inventory-management/internal/dto"
	"github.com/victortedesco/inventory-management/internal/interfaces"
	"github.com/victortedesco/inventory-management/internal/repository"
	"github.com/victortedesco/inventory-management/pkg/utils"
)

const (
	productImageFolder = "inventory/products"
	maxImageBytes      = 5 << 20
)

type ProductService interface {
	List(ctx context.Context, name string) ([]dto.ProductResponse, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	Create(ctx context.Context, actor string, input dto.ProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, actor string, id uuid.UUID, input dto.ProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error
	AdjustQuantity(ctx context.Context, actor string, id uuid.UUID, delta int) (*dto.ProductResponse, error)
}

type productService struct {
	newUnitOfWork repository.UnitOfWorkFactory
	// optional, data URIs are stored as is without it
	uploader interfaces.Uploader
}

func NewProductService(newUnitOfWork repository.UnitOfWorkFactory, uploader interfaces.Uploader) ProductService {
	return &productService{newUnitOfWork: newUnitOfWork, uploader: uploader}
}

func validateProduct(input dto.ProductRequest) error {
	v := &validator{}
	v.check(strings.TrimSpace(input.Name) != "", "name is required")
	v.check(input.UnitPrice.IsPositive(), "unit_price must be greater than zero")
	v.check(len(input.Barcode) <= 50, "barcode must have at most 50 characters")
	return v.err()
}

func (s *productService) List(ctx context.Context, name string) ([]dto.ProductResponse, error) {
	products, err := s.newUnitOfWork().Products().List(ctx, name)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

func (s *productService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]dto.ProductResponse, error) {
	uow := s.newUnitOfWork()
	if _, err := uow.Categories().FindByID(ctx, categoryID); err != nil {
		return nil, notFound(err)
	}
	products, err := uow.Products().ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.newUnitOfWork().Products().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toProductResponse(product), nil
}

func (s *productService) Create(ctx context.Context, actor string, input dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()
	if input.CategoryID != nil {
		if _, err := uow.Categories().FindByID(ctx, *input.CategoryID); err != nil {
			return nil, categoryInput(err)
		}
	}

	product := domain.NewProduct(strings.TrimSpace(input.Name), actor)
	image, err := s.storeImage(ctx, product.ID, input.Image)
	if err != nil {
		return nil, err
	}
	product.Image = image
	product.UnitPrice = input.UnitPrice
	product.Quantity = input.Quantity
	product.Barcode = strings.TrimSpace(input.Barcode)
	product.CategoryID = input.CategoryID

	uow.Add(product)
	if err := uow.Commit(ctx, actor); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (s *productService) Update(ctx context.Context, actor string, id uuid.UUID, input dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()
	product, err := uow.Products().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if input.CategoryID != nil {
		if _, err := uow.Categories().FindByID(ctx, *input.CategoryID); err != nil {
			return nil, categoryInput(err)
		}
	}

	image := product.Image
	if input.Image != product.Image {
		if image, err = s.storeImage(ctx, product.ID, input.Image); err != nil {
			return nil, err
		}
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Image = image
	product.UnitPrice = input.UnitPrice
	product.Quantity = input.Quantity
	product.Barcode = strings.TrimSpace(input.Barcode)
	product.CategoryID = input.CategoryID
	product.UpdatedBy = actor

	if err := uow.Commit(ctx, actor); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete only removes products that are out of stock.
func (s *productService) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	uow := s.newUnitOfWork()
	product, err := uow.Products().FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if product.Quantity > 0 {
		return &ValidationError{Messages: []string{"product still has items in stock"}}
	}

	uow.Remove(product)
	return uow.Commit(ctx, actor)
}

// AdjustQuantity adds delta to the stock. The stock never goes below zero.
func (s *productService) AdjustQuantity(ctx context.Context, actor string, id uuid.UUID, delta int) (*dto.ProductResponse, error) {
	uow := s.newUnitOfWork()
	product, err := uow.Products().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	next := int64(product.Quantity) + int64(delta)
	if next < 0 {
		return nil, &ValidationError{Messages: []string{fmt.Sprintf("only %d items in stock", product.Quantity)}}
	}
	if delta != 0 {
		product.Quantity = uint(next)
		product.UpdatedBy = actor
	}

	if err := uow.Commit(ctx, actor); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// storeImage uploads a data URI and returns the hosted URL. Links, empty
// values and data URIs without an uploader are returned unchanged.
func (s *productService) storeImage(ctx context.Context, productID uuid.UUID, image string) (string, error) {
	image = strings.TrimSpace(image)
	if s.uploader == nil || !strings.HasPrefix(image, "data:") {
		return image, nil
	}

	header, payload, ok := strings.Cut(image, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return "", &ValidationError{Messages: []string{"image must be a base64 data URI or a URL"}}
	}
	b, err := utils.ReadAllLimit(base64.NewDecoder(base64.StdEncoding, strings.NewReader(payload)), maxImageBytes)
	if err != nil {
		return "", &ValidationError{Messages: []string{"invalid image: " + err.Error()}}
	}

	url, err := s.uploader.UploadBytes(ctx, productImageFolder, productID.String(), b)
	if err != nil {
		log.Printf("upload product image error: %v", err)
		return "", errors.New("failed to upload product image")
	}
	return url, nil
}

func categoryInput(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &ValidationError{Messages: []string{"category_id does not exist"}}
	}
	return err
}

func toProductResponses(products []domain.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *toProductResponse(&products[i]))
	}
	return out
}

func toProductResponse(p *domain.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Image:      p.Image,
		ImageType:  string(p.ImageType()),
		UnitPrice:  p.UnitPrice,
		Quantity:   p.Quantity,
		Barcode:    p.Barcode,
		CategoryID: p.CategoryID,
		CreatedBy:  p.CreatedBy,
		UpdatedBy:  p.UpdatedBy,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
