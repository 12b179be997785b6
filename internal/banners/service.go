package banners

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/etalase/etalase/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, tenantID int64) ([]Banner, error) {
	return s.repo.List(ctx, tenantID)
}

func (s *Service) Create(ctx context.Context, tenantID int64, input BannerInput) (Banner, error) {
	banner := Banner{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Title:    input.Title,
		ImageURL: input.ImageURL,
		LinkURL:  input.LinkURL,
		IsActive: input.IsActive,
	}
	if err := validateBanner(banner); err != nil {
		return Banner{}, err
	}
	return s.repo.Create(ctx, banner)
}

func (s *Service) Update(ctx context.Context, tenantID int64, id string, input BannerInput) (Banner, error) {
	banner, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return Banner{}, err
	}
	banner.Title = input.Title
	banner.ImageURL = input.ImageURL
	banner.LinkURL = input.LinkURL
	banner.IsActive = input.IsActive
	if err := validateBanner(banner); err != nil {
		return Banner{}, err
	}
	if err := s.repo.Update(ctx, banner); err != nil {
		return Banner{}, err
	}
	return banner, nil
}

func (s *Service) Delete(ctx context.Context, tenantID int64, id string) error {
	return s.repo.Delete(ctx, tenantID, id)
}

// Reorder persists a drag-and-drop result. The id list must be a permutation
// of the tenant's banners; anything else is rejected before writing.
func (s *Service) Reorder(ctx context.Context, tenantID int64, orderedIDs []string) ([]Banner, error) {
	current, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(orderedIDs) != len(current) {
		return nil, fmt.Errorf("%w: reorder must list all %d banners", httpx.ErrValidation, len(current))
	}
	known := make(map[string]bool, len(current))
	for _, b := range current {
		known[b.ID] = true
	}
	for _, id := range orderedIDs {
		if !known[id] {
			return nil, fmt.Errorf("%w: unknown banner %s", httpx.ErrValidation, id)
		}
		delete(known, id)
	}

	if err := s.repo.SavePositions(ctx, tenantID, orderedIDs); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, tenantID)
}

func validateBanner(b Banner) error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: banner title is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(b.ImageURL) == "" {
		return fmt.Errorf("%w: banner image is required", httpx.ErrValidation)
	}
	return nil
}
