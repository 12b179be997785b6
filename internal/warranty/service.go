package warranty

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/etalase/etalase/internal/catalog/products"
	"github.com/etalase/etalase/internal/platform/httpx"
	"github.com/etalase/etalase/internal/sales/customers"
)

// ProductGetter loads a product for preview rendering.
type ProductGetter interface {
	Get(ctx context.Context, tenantID, id int64) (products.Product, error)
}

// CustomerGetter loads a customer for preview rendering.
type CustomerGetter interface {
	Get(ctx context.Context, tenantID, id int64) (customers.Customer, error)
}

type Service struct {
	repo      Repository
	products  ProductGetter
	customers CustomerGetter
	logger    *slog.Logger
}

func NewService(repo Repository, products ProductGetter, customers CustomerGetter, logger *slog.Logger) *Service {
	return &Service{repo: repo, products: products, customers: customers, logger: logger}
}

func (s *Service) List(ctx context.Context, tenantID int64) ([]Template, error) {
	return s.repo.List(ctx, tenantID)
}

func (s *Service) Get(ctx context.Context, tenantID, id int64) (Template, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *Service) Create(ctx context.Context, tenantID int64, input CreateTemplateInput) (Template, error) {
	tpl := Template{
		TenantID:     tenantID,
		Name:         strings.TrimSpace(input.Name),
		Body:         input.Body,
		DurationDays: input.DurationDays,
		IsDefault:    input.IsDefault,
	}
	if tpl.Name == "" {
		return Template{}, fmt.Errorf("%w: template name is required", httpx.ErrValidation)
	}
	if tpl.IsDefault {
		if err := s.repo.ClearDefault(ctx, tenantID); err != nil {
			return Template{}, err
		}
	}
	return s.repo.Create(ctx, tpl)
}

func (s *Service) Update(ctx context.Context, tenantID, id int64, input UpdateTemplateInput) (Template, error) {
	tpl, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return Template{}, err
	}
	if input.Name != nil {
		tpl.Name = strings.TrimSpace(*input.Name)
		if tpl.Name == "" {
			return Template{}, fmt.Errorf("%w: template name is required", httpx.ErrValidation)
		}
	}
	if input.Body != nil {
		tpl.Body = *input.Body
	}
	if input.DurationDays != nil {
		tpl.DurationDays = *input.DurationDays
	}
	if input.IsDefault != nil {
		tpl.IsDefault = *input.IsDefault
	}
	if tpl.IsDefault {
		if err := s.repo.ClearDefault(ctx, tenantID); err != nil {
			return Template{}, err
		}
	}
	if err := s.repo.Update(ctx, tpl); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	return s.repo.Delete(ctx, tenantID, id)
}

// Preview renders a template against a live product, and optionally a
// customer so the price tag reflects that customer's tier.
func (s *Service) Preview(ctx context.Context, tenantID, id int64, input PreviewInput) (PreviewResult, error) {
	tpl, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return PreviewResult{}, err
	}
	product, err := s.products.Get(ctx, tenantID, input.ProductID)
	if err != nil {
		return PreviewResult{}, err
	}
	var customer *customers.Customer
	if input.CustomerID != nil {
		c, err := s.customers.Get(ctx, tenantID, *input.CustomerID)
		if err != nil {
			return PreviewResult{}, err
		}
		customer = &c
	}
	return PreviewResult{Rendered: Render(tpl, product, customer, time.Now())}, nil
}
