package fields

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/etalase/etalase/internal/platform/httpx"
)

// WarmupEnqueuer schedules a background re-prime of a tenant's field cache.
// Implemented by the jobs package; nil disables warmup scheduling.
type WarmupEnqueuer interface {
	EnqueueFieldCacheWarmup(ctx context.Context, tenantID int64) error
}

// Service owns the field library: durable storage, the short-lived listing
// cache, and the mutation policies around system fields.
type Service struct {
	repo   Repository
	cache  *Cache
	warmup WarmupEnqueuer
	logger *slog.Logger
}

func NewService(repo Repository, cache *Cache, warmup WarmupEnqueuer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, cache: cache, warmup: warmup, logger: logger}
}

// List returns every definition for the tenant, ordered by display order then
// key. Listings are served from the cache when present.
func (s *Service) List(ctx context.Context, tenantID int64) ([]FieldDefinition, error) {
	if defs, ok := s.cache.Get(ctx, tenantID); ok {
		return defs, nil
	}
	defs, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	if err := s.cache.Set(ctx, tenantID, defs); err != nil {
		s.logger.Warn("field cache set failed", "tenant_id", tenantID, "error", err)
	}
	return defs, nil
}

// GetByID is a point lookup. A missing or foreign-tenant id yields
// httpx.ErrNotFound, which callers treat as absence rather than failure.
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (FieldDefinition, error) {
	if id <= 0 {
		return FieldDefinition{}, fmt.Errorf("%w: field %d", httpx.ErrNotFound, id)
	}
	return s.repo.GetByID(ctx, tenantID, id)
}

// GetByKey is a point lookup by the stable machine name.
func (s *Service) GetByKey(ctx context.Context, tenantID int64, key string) (FieldDefinition, error) {
	return s.repo.GetByKey(ctx, tenantID, key)
}

// Create stores a new admin-defined definition. System fields are seeded, so
// this path always persists is_system = false.
func (s *Service) Create(ctx context.Context, tenantID int64, input CreateFieldInput) (FieldDefinition, error) {
	def := FieldDefinition{
		TenantID:     tenantID,
		Key:          input.Key,
		Label:        input.Label,
		Category:     input.Category,
		Type:         input.Type,
		Options:      input.Options,
		TableConfig:  input.TableConfig,
		Placeholder:  input.Placeholder,
		HelpText:     input.HelpText,
		IsSystem:     false,
		DisplayOrder: input.DisplayOrder,
	}
	if err := validateDefinition(def, true); err != nil {
		return FieldDefinition{}, err
	}

	if _, err := s.repo.GetByKey(ctx, tenantID, input.Key); err == nil {
		return FieldDefinition{}, fmt.Errorf("%w: field key %q already exists", httpx.ErrDuplicateKey, input.Key)
	} else if !errors.Is(err, httpx.ErrNotFound) {
		return FieldDefinition{}, fmt.Errorf("check existing key: %w", err)
	}

	created, err := s.repo.Create(ctx, def)
	if err != nil {
		return FieldDefinition{}, err
	}
	s.invalidate(ctx, tenantID)
	return created, nil
}

// Update applies a partial update. For system fields the structural
// attributes (key, type, category, table config) are silently preserved and
// only the presentation subset is applied; that is policy, not an error, so
// admin screens can submit the whole form unconditionally.
func (s *Service) Update(ctx context.Context, tenantID, id int64, input UpdateFieldInput) (FieldDefinition, error) {
	def, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return FieldDefinition{}, err
	}

	if input.Label != nil {
		def.Label = *input.Label
	}
	if input.Placeholder != nil {
		def.Placeholder = *input.Placeholder
	}
	if input.HelpText != nil {
		def.HelpText = *input.HelpText
	}
	if input.Options != nil {
		def.Options = input.Options
	}
	if input.DisplayOrder != nil {
		def.DisplayOrder = *input.DisplayOrder
	}
	if !def.IsSystem {
		if input.Category != nil {
			def.Category = *input.Category
		}
		if input.Type != nil {
			def.Type = *input.Type
		}
		if input.TableConfig != nil {
			def.TableConfig = input.TableConfig
		}
	}

	if err := validateDefinition(def, false); err != nil {
		return FieldDefinition{}, err
	}
	if err := s.repo.Update(ctx, def); err != nil {
		return FieldDefinition{}, err
	}
	s.invalidate(ctx, tenantID)
	return def, nil
}

// Delete removes a definition, refusing while any category configuration
// still references it.
func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	refs, err := s.repo.CountRefs(ctx, tenantID, id)
	if err != nil {
		return fmt.Errorf("count references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: field is used by %d categories", httpx.ErrInUse, refs)
	}
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.invalidate(ctx, tenantID)
	return nil
}

// invalidate drops the cached listing and schedules a background warmup.
// Both are best effort; the mutation has already committed.
func (s *Service) invalidate(ctx context.Context, tenantID int64) {
	if err := s.cache.Invalidate(ctx, tenantID); err != nil {
		s.logger.Warn("field cache invalidate failed", "tenant_id", tenantID, "error", err)
	}
	if s.warmup != nil {
		if err := s.warmup.EnqueueFieldCacheWarmup(ctx, tenantID); err != nil {
			s.logger.Warn("field cache warmup enqueue failed", "tenant_id", tenantID, "error", err)
		}
	}
}
