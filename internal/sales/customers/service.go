package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/etalase/etalase/internal/platform/httpx"
	"github.com/etalase/etalase/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, tenantID int64, filters shared.ListFilters) ([]Customer, int, error) {
	return s.repo.List(ctx, tenantID, filters)
}

func (s *Service) Get(ctx context.Context, tenantID, id int64) (Customer, error) {
	if id <= 0 {
		return Customer{}, fmt.Errorf("%w: customer %d", httpx.ErrNotFound, id)
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) Create(ctx context.Context, tenantID int64, input CustomerInput) (Customer, error) {
	customer := Customer{
		TenantID:         tenantID,
		Name:             input.Name,
		Phone:            input.Phone,
		Type:             input.Type,
		AdminPreviewType: input.AdminPreviewType,
		IsActive:         true,
	}
	if err := normalize(&customer); err != nil {
		return Customer{}, err
	}
	return s.repo.Create(ctx, customer)
}

func (s *Service) Update(ctx context.Context, tenantID, id int64, input CustomerInput) (Customer, error) {
	customer, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return Customer{}, err
	}
	customer.Name = input.Name
	customer.Phone = input.Phone
	customer.Type = input.Type
	customer.AdminPreviewType = input.AdminPreviewType
	if err := normalize(&customer); err != nil {
		return Customer{}, err
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return Customer{}, err
	}
	return customer, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: customer %d", httpx.ErrNotFound, id)
	}
	return s.repo.Delete(ctx, tenantID, id)
}

// normalize enforces the record-level invariants: the type must be known,
// and a preview tier only exists on ADMIN customers.
func normalize(c *Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: customer name is required", httpx.ErrValidation)
	}
	if !c.Type.SellableTier() && c.Type != TypeAdmin {
		return fmt.Errorf("%w: unknown customer type %q", httpx.ErrValidation, c.Type)
	}
	if c.Type != TypeAdmin {
		c.AdminPreviewType = nil
	} else if c.AdminPreviewType != nil && !c.AdminPreviewType.SellableTier() {
		return fmt.Errorf("%w: preview type must be a sellable tier", httpx.ErrValidation)
	}
	return nil
}
