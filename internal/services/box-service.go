package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/victortedesco/inventory-management/internal/domain"
	"github.com/victortedesco/inventory-management/internal/dto"
	"github.com/victortedesco/inventory-management/internal/repository"
)

var maxDiscount = decimal.NewFromInt(80)

type BoxService interface {
	List(ctx context.Context) ([]dto.BoxResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.BoxResponse, error)
	Create(ctx context.Context, actor string, input dto.BoxRequest) (*dto.BoxResponse, error)
	Update(ctx context.Context, actor string, id uuid.UUID, input dto.BoxRequest) (*dto.BoxResponse, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error
}

type boxService struct {
	newUnitOfWork repository.UnitOfWorkFactory
}

func NewBoxService(newUnitOfWork repository.UnitOfWorkFactory) BoxService {
	return &boxService{newUnitOfWork: newUnitOfWork}
}

func validateBox(input dto.BoxRequest) error {
	v := &validator{}
	n := utf8.RuneCountInString(strings.TrimSpace(input.Name))
	v.check(n >= 3 && n <= 50, "name must have between 3 and 50 characters")
	v.check(input.Weight > 0, "weight must be greater than zero")
	v.check(input.Depth > 0, "depth must be greater than zero")
	v.check(input.Height > 0, "height must be greater than zero")
	v.check(input.Width > 0, "width must be greater than zero")
	v.check(!input.Discount.IsNegative() && input.Discount.LessThanOrEqual(maxDiscount), "discount must be between 0 and 80")

	seen := make(map[uuid.UUID]bool, len(input.Products))
	for _, line := range input.Products {
		v.check(line.Quantity > 0, fmt.Sprintf("quantity of product %s must be greater than zero", line.ProductID))
		v.check(!seen[line.ProductID], fmt.Sprintf("product %s is listed more than once", line.ProductID))
		seen[line.ProductID] = true
	}
	return v.err()
}

func (s *boxService) List(ctx context.Context) ([]dto.BoxResponse, error) {
	boxes, err := s.newUnitOfWork().Boxes().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BoxResponse, 0, len(boxes))
	for i := range boxes {
		out = append(out, *toBoxResponse(&boxes[i]))
	}
	return out, nil
}

func (s *boxService) Get(ctx context.Context, id uuid.UUID) (*dto.BoxResponse, error) {
	box, err := s.newUnitOfWork().Boxes().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toBoxResponse(box), nil
}

func (s *boxService) Create(ctx context.Context, actor string, input dto.BoxRequest) (*dto.BoxResponse, error) {
	if err := validateBox(input); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()
	box := domain.NewBox(strings.TrimSpace(input.Name), actor)
	applyBox(box, input)
	uow.Add(box)

	lines, err := s.addLines(ctx, uow, box, input.Products, actor)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx, actor); err != nil {
		return nil, err
	}
	box.Products = lines
	return toBoxResponse(box), nil
}

func (s *boxService) Update(ctx context.Context, actor string, id uuid.UUID, input dto.BoxRequest) (*dto.BoxResponse, error) {
	if err := validateBox(input); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()
	box, err := uow.Boxes().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	before := *box
	box.Name = strings.TrimSpace(input.Name)
	applyBox(box, input)
	if !sameBoxFields(&before, box) {
		box.UpdatedBy = actor
	}

	var lines []domain.ProductInBox
	replace := input.Products != nil
	if replace {
		for i := range box.Products {
			uow.Remove(&box.Products[i])
		}
		if lines, err = s.addLines(ctx, uow, box, input.Products, actor); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(ctx, actor); err != nil {
		return nil, err
	}
	if replace {
		box.Products = lines
	}
	return toBoxResponse(box), nil
}

// Delete removes the box and its product lines in one commit.
func (s *boxService) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	uow := s.newUnitOfWork()
	box, err := uow.Boxes().FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}

	for i := range box.Products {
		uow.Remove(&box.Products[i])
	}
	uow.Remove(box)
	return uow.Commit(ctx, actor)
}

func (s *boxService) addLines(ctx context.Context, uow repository.UnitOfWork, box *domain.Box, input []dto.BoxProductRequest, actor string) ([]domain.ProductInBox, error) {
	v := &validator{}
	added := make([]*domain.ProductInBox, 0, len(input))
	for _, in := range input {
		product, err := uow.Products().FindByID(ctx, in.ProductID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			v.check(false, fmt.Sprintf("product %s does not exist", in.ProductID))
			continue
		}
		line := domain.NewProductInBox(box, product, in.Quantity, actor)
		uow.Add(line)
		added = append(added, line)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	lines := make([]domain.ProductInBox, 0, len(added))
	for _, l := range added {
		lines = append(lines, *l)
	}
	return lines, nil
}

func applyBox(box *domain.Box, input dto.BoxRequest) {
	box.Barcode = strings.TrimSpace(input.Barcode)
	box.Quantity = input.Quantity
	box.Discount = input.Discount
	box.Weight = input.Weight
	box.Depth = input.Depth
	box.Height = input.Height
	box.Width = input.Width
}

func sameBoxFields(a, b *domain.Box) bool {
	return a.Name == b.Name && a.Barcode == b.Barcode && a.Quantity == b.Quantity &&
		a.Discount.Equal(b.Discount) && a.Weight == b.Weight && a.Depth == b.Depth &&
		a.Height == b.Height && a.Width == b.Width
}

func toBoxResponse(b *domain.Box) *dto.BoxResponse {
	products := make([]dto.BoxProductResponse, 0, len(b.Products))
	for _, line := range b.Products {
		name := line.Name
		if line.Product != nil {
			name = line.Product.Name
		}
		products = append(products, dto.BoxProductResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Name:      name,
			Quantity:  line.Quantity,
		})
	}
	return &dto.BoxResponse{
		ID:        b.ID,
		Name:      b.Name,
		Barcode:   b.Barcode,
		Quantity:  b.Quantity,
		Discount:  b.Discount,
		Weight:    b.Weight,
		Depth:     b.Depth,
		Height:    b.Height,
		Width:     b.Width,
		Products:  products,
		CreatedBy: b.CreatedBy,
		UpdatedBy: b.UpdatedBy,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
