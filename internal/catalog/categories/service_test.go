package categories

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etalase/etalase/internal/catalog/fields"
	"github.com/etalase/etalase/internal/platform/httpx"
)

type memoryRepo struct {
	categories map[int64]Category
	saves      int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{categories: make(map[int64]Category)}
}

func (r *memoryRepo) List(ctx context.Context, tenantID int64) ([]Category, error) {
	var out []Category
	for _, c := range r.categories {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, tenantID, id int64) (Category, error) {
	if c, ok := r.categories[id]; ok && c.TenantID == tenantID {
		return c, nil
	}
	return Category{}, fmt.Errorf("%w: category %d", httpx.ErrNotFound, id)
}

func (r *memoryRepo) Create(ctx context.Context, category Category) (Category, error) {
	category.ID = int64(len(r.categories) + 1)
	r.categories[category.ID] = category
	return category, nil
}

func (r *memoryRepo) Update(ctx context.Context, category Category) error {
	existing, ok := r.categories[category.ID]
	if !ok {
		return fmt.Errorf("%w: category %d", httpx.ErrNotFound, category.ID)
	}
	category.FieldConfig = existing.FieldConfig
	r.categories[category.ID] = category
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, tenantID, id int64) error {
	delete(r.categories, id)
	return nil
}

func (r *memoryRepo) SaveConfig(ctx context.Context, tenantID, id int64, entries []FieldConfigEntry) error {
	c, ok := r.categories[id]
	if !ok || c.TenantID != tenantID {
		return fmt.Errorf("%w: category %d", httpx.ErrNotFound, id)
	}
	r.saves++
	c.FieldConfig = entries
	r.categories[id] = c
	return nil
}

type fakeLibrary struct {
	defs []fields.FieldDefinition
}

func (l *fakeLibrary) List(ctx context.Context, tenantID int64) ([]fields.FieldDefinition, error) {
	return l.defs, nil
}

func (l *fakeLibrary) GetByID(ctx context.Context, tenantID, id int64) (fields.FieldDefinition, error) {
	for _, d := range l.defs {
		if d.ID == id {
			return d, nil
		}
	}
	return fields.FieldDefinition{}, fmt.Errorf("%w: field %d", httpx.ErrNotFound, id)
}

func setup(t *testing.T, defs ...fields.FieldDefinition) (*Service, *memoryRepo, Category) {
	t.Helper()
	repo := newMemoryRepo()
	svc := NewService(repo, &fakeLibrary{defs: defs}, nil, nil)
	category, err := svc.Create(context.Background(), 1, CategoryInput{Name: "Handphone", Slug: "handphone", IsActive: true})
	require.NoError(t, err)
	return svc, repo, category
}

func libraryField(id int64, key string) fields.FieldDefinition {
	return fields.FieldDefinition{ID: id, TenantID: 1, Key: key, Label: key, Category: fields.CategorySpec, Type: fields.TypeText}
}

func TestAddFieldRejectsDuplicateReference(t *testing.T) {
	svc, _, category := setup(t, libraryField(10, "warna"))
	ctx := context.Background()

	updated, err := svc.AddField(ctx, 1, category.ID, 10)
	require.NoError(t, err)
	require.Len(t, updated.FieldConfig, 1)
	require.Equal(t, RequirementOptional, updated.FieldConfig[0].Requirement)

	_, err = svc.AddField(ctx, 1, category.ID, 10)
	require.ErrorIs(t, err, httpx.ErrAlreadyAdded)

	got, err := svc.Get(ctx, 1, category.ID)
	require.NoError(t, err)
	require.Len(t, got.FieldConfig, 1)
}

func TestAddFieldRequiresExistingDefinition(t *testing.T) {
	svc, _, category := setup(t)
	_, err := svc.AddField(context.Background(), 1, category.ID, 99)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestAddAllMissingReportsNoOp(t *testing.T) {
	svc, _, category := setup(t, libraryField(10, "warna"), libraryField(11, "ram"))
	ctx := context.Background()

	result, err := svc.AddAllMissing(ctx, 1, category.ID)
	require.NoError(t, err)
	require.Equal(t, 2, result.Added)

	// Second run adds nothing and still succeeds.
	result, err = svc.AddAllMissing(ctx, 1, category.ID)
	require.NoError(t, err)
	require.Equal(t, 0, result.Added)
}

func TestSetRequirementAllowsEveryTransition(t *testing.T) {
	svc, _, category := setup(t, libraryField(10, "warna"))
	ctx := context.Background()

	updated, err := svc.AddField(ctx, 1, category.ID, 10)
	require.NoError(t, err)
	entryID := updated.FieldConfig[0].ID

	for _, req := range []Requirement{RequirementRequired, RequirementHidden, RequirementOptional, RequirementRequired} {
		updated, err = svc.SetRequirement(ctx, 1, category.ID, entryID, req)
		require.NoError(t, err)
		require.Equal(t, req, updated.FieldConfig[0].Requirement)
	}

	_, err = svc.SetRequirement(ctx, 1, category.ID, entryID, Requirement("mandatory"))
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestRemoveFieldLeavesDefinitionAlone(t *testing.T) {
	library := &fakeLibrary{defs: []fields.FieldDefinition{libraryField(10, "warna")}}
	repo := newMemoryRepo()
	svc := NewService(repo, library, nil, nil)
	ctx := context.Background()

	category, err := svc.Create(ctx, 1, CategoryInput{Name: "Handphone", Slug: "handphone", IsActive: true})
	require.NoError(t, err)
	updated, err := svc.AddField(ctx, 1, category.ID, 10)
	require.NoError(t, err)

	updated, err = svc.RemoveField(ctx, 1, category.ID, updated.FieldConfig[0].ID)
	require.NoError(t, err)
	require.Empty(t, updated.FieldConfig)
	require.Len(t, library.defs, 1)

	_, err = svc.RemoveField(ctx, 1, category.ID, "missing")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestReorderIsAllOrNothing(t *testing.T) {
	svc, repo, category := setup(t, libraryField(10, "warna"), libraryField(11, "ram"), libraryField(12, "rom"))
	ctx := context.Background()

	_, err := svc.AddAllMissing(ctx, 1, category.ID)
	require.NoError(t, err)
	current, err := svc.Get(ctx, 1, category.ID)
	require.NoError(t, err)
	require.Len(t, current.FieldConfig, 3)

	ids := []string{current.FieldConfig[2].ID, current.FieldConfig[0].ID, current.FieldConfig[1].ID}
	savesBefore := repo.saves

	// Unknown id: nothing written.
	_, err = svc.Reorder(ctx, 1, category.ID, []string{ids[0], ids[1], "bogus"})
	require.ErrorIs(t, err, httpx.ErrValidation)
	// Short list: nothing written.
	_, err = svc.Reorder(ctx, 1, category.ID, ids[:2])
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Equal(t, savesBefore, repo.saves)

	updated, err := svc.Reorder(ctx, 1, category.ID, ids)
	require.NoError(t, err)
	require.Equal(t, ids[0], updated.FieldConfig[0].ID)
	require.Equal(t, ids[1], updated.FieldConfig[1].ID)
	require.Equal(t, ids[2], updated.FieldConfig[2].ID)
	require.Equal(t, savesBefore+1, repo.saves, "a valid reorder is one wholesale write")
}
