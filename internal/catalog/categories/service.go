package categories

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/etalase/etalase/internal/catalog/fields"
	"github.com/etalase/etalase/internal/platform/httpx"
)

// FieldLister is the slice of the field library the configuration operations
// need. Satisfied by *fields.Service.
type FieldLister interface {
	List(ctx context.Context, tenantID int64) ([]fields.FieldDefinition, error)
	GetByID(ctx context.Context, tenantID, id int64) (fields.FieldDefinition, error)
}

// ReindexEnqueuer schedules a background re-check of product attributes
// after the field configuration changes shape. Implemented by the jobs
// package; nil disables scheduling.
type ReindexEnqueuer interface {
	EnqueueCategoryReindex(ctx context.Context, tenantID, categoryID int64) error
}

type Service struct {
	repo    Repository
	library FieldLister
	reindex ReindexEnqueuer
	logger  *slog.Logger
}

func NewService(repo Repository, library FieldLister, reindex ReindexEnqueuer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, library: library, reindex: reindex, logger: logger}
}

// scheduleReindex is best effort; the configuration change has already
// committed.
func (s *Service) scheduleReindex(ctx context.Context, tenantID, categoryID int64) {
	if s.reindex == nil {
		return
	}
	if err := s.reindex.EnqueueCategoryReindex(ctx, tenantID, categoryID); err != nil {
		s.logger.Warn("category reindex enqueue failed",
			"tenant_id", tenantID, "category_id", categoryID, "error", err)
	}
}

// AddAllResult reports how many library fields AddAllMissing appended. Zero
// is a successful no-op, not an error; handlers message it distinctly.
type AddAllResult struct {
	Added int `json:"added"`
}

func (s *Service) List(ctx context.Context, tenantID int64) ([]Category, error) {
	return s.repo.List(ctx, tenantID)
}

func (s *Service) Get(ctx context.Context, tenantID, id int64) (Category, error) {
	if id <= 0 {
		return Category{}, fmt.Errorf("%w: category %d", httpx.ErrNotFound, id)
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) Create(ctx context.Context, tenantID int64, input CategoryInput) (Category, error) {
	category := Category{
		TenantID:     tenantID,
		Name:         input.Name,
		Slug:         input.Slug,
		DisplayOrder: input.DisplayOrder,
		IsActive:     input.IsActive,
		FieldConfig:  []FieldConfigEntry{},
	}
	if err := validateCategory(category); err != nil {
		return Category{}, err
	}
	return s.repo.Create(ctx, category)
}

func (s *Service) Update(ctx context.Context, tenantID, id int64, input CategoryInput) (Category, error) {
	category, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return Category{}, err
	}
	category.Name = input.Name
	category.Slug = input.Slug
	category.DisplayOrder = input.DisplayOrder
	category.IsActive = input.IsActive
	if err := validateCategory(category); err != nil {
		return Category{}, err
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return Category{}, err
	}
	return category, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: category %d", httpx.ErrNotFound, id)
	}
	return s.repo.Delete(ctx, tenantID, id)
}

// AddField appends a reference entry for fieldID, defaulting to optional.
// Duplicate detection compares reference ids only; inline entries never
// collide with references.
func (s *Service) AddField(ctx context.Context, tenantID, categoryID, fieldID int64) (Category, error) {
	if _, err := s.library.GetByID(ctx, tenantID, fieldID); err != nil {
		return Category{}, err
	}
	category, err := s.repo.Get(ctx, tenantID, categoryID)
	if err != nil {
		return Category{}, err
	}
	for _, entry := range category.FieldConfig {
		if entry.Kind == FieldRefReference && entry.FieldID == fieldID {
			return Category{}, fmt.Errorf("%w: field %d is already configured", httpx.ErrAlreadyAdded, fieldID)
		}
	}
	category.FieldConfig = append(category.FieldConfig, FieldConfigEntry{
		ID:          uuid.NewString(),
		Kind:        FieldRefReference,
		FieldID:     fieldID,
		Requirement: RequirementOptional,
	})
	if err := s.repo.SaveConfig(ctx, tenantID, categoryID, category.FieldConfig); err != nil {
		return Category{}, err
	}
	s.scheduleReindex(ctx, tenantID, categoryID)
	return category, nil
}

// AddAllMissing appends every library definition not yet referenced, all as
// optional. Adding nothing is a valid outcome.
func (s *Service) AddAllMissing(ctx context.Context, tenantID, categoryID int64) (AddAllResult, error) {
	category, err := s.repo.Get(ctx, tenantID, categoryID)
	if err != nil {
		return AddAllResult{}, err
	}
	defs, err := s.library.List(ctx, tenantID)
	if err != nil {
		return AddAllResult{}, fmt.Errorf("list field library: %w", err)
	}

	present := make(map[int64]bool, len(category.FieldConfig))
	for _, entry := range category.FieldConfig {
		if entry.Kind == FieldRefReference {
			present[entry.FieldID] = true
		}
	}

	added := 0
	for _, def := range defs {
		if present[def.ID] {
			continue
		}
		category.FieldConfig = append(category.FieldConfig, FieldConfigEntry{
			ID:          uuid.NewString(),
			Kind:        FieldRefReference,
			FieldID:     def.ID,
			Requirement: RequirementOptional,
		})
		added++
	}
	if added == 0 {
		return AddAllResult{Added: 0}, nil
	}
	if err := s.repo.SaveConfig(ctx, tenantID, categoryID, category.FieldConfig); err != nil {
		return AddAllResult{}, err
	}
	s.scheduleReindex(ctx, tenantID, categoryID)
	return AddAllResult{Added: added}, nil
}

// SetRequirement moves an entry between hidden, optional and required. Every
// transition is legal.
func (s *Service) SetRequirement(ctx context.Context, tenantID, categoryID int64, entryID string, requirement Requirement) (Category, error) {
	if !requirement.Valid() {
		return Category{}, fmt.Errorf("%w: unknown requirement %q", httpx.ErrValidation, requirement)
	}
	category, err := s.repo.Get(ctx, tenantID, categoryID)
	if err != nil {
		return Category{}, err
	}
	found := false
	for i := range category.FieldConfig {
		if category.FieldConfig[i].ID == entryID {
			category.FieldConfig[i].Requirement = requirement
			found = true
			break
		}
	}
	if !found {
		return Category{}, fmt.Errorf("%w: config entry %s", httpx.ErrNotFound, entryID)
	}
	if err := s.repo.SaveConfig(ctx, tenantID, categoryID, category.FieldConfig); err != nil {
		return Category{}, err
	}
	s.scheduleReindex(ctx, tenantID, categoryID)
	return category, nil
}

// RemoveField drops an entry from the configuration. The underlying library
// definition is untouched.
func (s *Service) RemoveField(ctx context.Context, tenantID, categoryID int64, entryID string) (Category, error) {
	category, err := s.repo.Get(ctx, tenantID, categoryID)
	if err != nil {
		return Category{}, err
	}
	kept := category.FieldConfig[:0]
	found := false
	for _, entry := range category.FieldConfig {
		if entry.ID == entryID {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return Category{}, fmt.Errorf("%w: config entry %s", httpx.ErrNotFound, entryID)
	}
	category.FieldConfig = kept
	if err := s.repo.SaveConfig(ctx, tenantID, categoryID, category.FieldConfig); err != nil {
		return Category{}, err
	}
	s.scheduleReindex(ctx, tenantID, categoryID)
	return category, nil
}

// Reorder replaces the stored order wholesale. The ordered ids must be a
// permutation of the current entries; anything else is rejected before a
// single byte is written.
func (s *Service) Reorder(ctx context.Context, tenantID, categoryID int64, orderedEntryIDs []string) (Category, error) {
	category, err := s.repo.Get(ctx, tenantID, categoryID)
	if err != nil {
		return Category{}, err
	}
	if len(orderedEntryIDs) != len(category.FieldConfig) {
		return Category{}, fmt.Errorf("%w: reorder must list all %d entries", httpx.ErrValidation, len(category.FieldConfig))
	}

	byID := make(map[string]FieldConfigEntry, len(category.FieldConfig))
	for _, entry := range category.FieldConfig {
		byID[entry.ID] = entry
	}
	reordered := make([]FieldConfigEntry, 0, len(orderedEntryIDs))
	for _, id := range orderedEntryIDs {
		entry, ok := byID[id]
		if !ok {
			return Category{}, fmt.Errorf("%w: unknown config entry %s", httpx.ErrValidation, id)
		}
		delete(byID, id)
		reordered = append(reordered, entry)
	}

	category.FieldConfig = reordered
	if err := s.repo.SaveConfig(ctx, tenantID, categoryID, reordered); err != nil {
		return Category{}, err
	}
	return category, nil
}
