package fields

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/etalase/etalase/internal/platform/httpx"
)

type memoryRepo struct {
	defs      map[int64]FieldDefinition
	refs      map[int64]int
	nextID    int64
	listCalls int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{defs: make(map[int64]FieldDefinition), refs: make(map[int64]int)}
}

func (r *memoryRepo) List(ctx context.Context, tenantID int64) ([]FieldDefinition, error) {
	r.listCalls++
	var out []FieldDefinition
	for _, d := range r.defs {
		if d.TenantID == tenantID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, tenantID, id int64) (FieldDefinition, error) {
	if d, ok := r.defs[id]; ok && d.TenantID == tenantID {
		return d, nil
	}
	return FieldDefinition{}, fmt.Errorf("%w: field %d", httpx.ErrNotFound, id)
}

func (r *memoryRepo) GetByKey(ctx context.Context, tenantID int64, key string) (FieldDefinition, error) {
	for _, d := range r.defs {
		if d.TenantID == tenantID && d.Key == key {
			return d, nil
		}
	}
	return FieldDefinition{}, fmt.Errorf("%w: field %q", httpx.ErrNotFound, key)
}

func (r *memoryRepo) Create(ctx context.Context, def FieldDefinition) (FieldDefinition, error) {
	for _, d := range r.defs {
		if d.TenantID == def.TenantID && d.Key == def.Key {
			return FieldDefinition{}, fmt.Errorf("%w: field key %q already exists", httpx.ErrDuplicateKey, def.Key)
		}
	}
	r.nextID++
	def.ID = r.nextID
	def.CreatedAt = time.Now()
	def.UpdatedAt = def.CreatedAt
	r.defs[def.ID] = def
	return def, nil
}

func (r *memoryRepo) Update(ctx context.Context, def FieldDefinition) error {
	if _, ok := r.defs[def.ID]; !ok {
		return fmt.Errorf("%w: field %d", httpx.ErrNotFound, def.ID)
	}
	def.UpdatedAt = time.Now()
	r.defs[def.ID] = def
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, tenantID, id int64) error {
	if d, ok := r.defs[id]; !ok || d.TenantID != tenantID {
		return fmt.Errorf("%w: field %d", httpx.ErrNotFound, id)
	}
	delete(r.defs, id)
	return nil
}

func (r *memoryRepo) CountRefs(ctx context.Context, tenantID, id int64) (int, error) {
	return r.refs[id], nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewService(repo, NewCache(client, time.Minute), nil, nil)
}

func TestCreateRejectsDuplicateKey(t *testing.T) {
	svc := newTestService(t, newMemoryRepo())
	ctx := context.Background()

	input := CreateFieldInput{Key: "warna", Label: "Warna", Category: CategorySpec, Type: TypeText}
	_, err := svc.Create(ctx, 1, input)
	require.NoError(t, err)

	_, err = svc.Create(ctx, 1, input)
	require.ErrorIs(t, err, httpx.ErrDuplicateKey)

	// Same key in another tenant is fine.
	_, err = svc.Create(ctx, 2, input)
	require.NoError(t, err)
}

func TestCreateRejectsSelectWithoutOptions(t *testing.T) {
	svc := newTestService(t, newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateFieldInput{
		Key: "kondisi", Label: "Kondisi", Category: CategorySpec, Type: TypeSelect,
	})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(ctx, 1, CreateFieldInput{
		Key: "kondisi", Label: "Kondisi", Category: CategorySpec, Type: TypeSelect,
		Options: []string{"Baru", "Bekas"},
	})
	require.NoError(t, err)
}

func TestUpdateRejectsSelectEmptiedOptions(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateFieldInput{
		Key: "kondisi", Label: "Kondisi", Category: CategorySpec, Type: TypeSelect,
		Options: []string{"Baru"},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 1, created.ID, UpdateFieldInput{Options: []string{}})
	require.ErrorIs(t, err, httpx.ErrValidation)

	stored := repo.defs[created.ID]
	require.Equal(t, []string{"Baru"}, stored.Options)
}

func TestUpdatePreservesSystemFieldStructure(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	repo.nextID++
	seeded := FieldDefinition{
		ID: repo.nextID, TenantID: 1, Key: "imei", Label: "IMEI",
		Category: CategorySpec, Type: TypeText, IsSystem: true, DisplayOrder: 1,
	}
	repo.defs[seeded.ID] = seeded

	newLabel := "Nomor IMEI"
	newPlaceholder := "15 digit"
	newType := TypeNumber
	newCategory := CategoryBasic
	newOrder := 9
	updated, err := svc.Update(ctx, 1, seeded.ID, UpdateFieldInput{
		Label:       &newLabel,
		Placeholder: &newPlaceholder,
		Type:        &newType,
		Category:    &newCategory,
		TableConfig: &TableConfig{TableName: "x", ValueColumn: "v", LabelColumn: "l"},
		DisplayOrder: &newOrder,
	})
	require.NoError(t, err)

	// Presentation subset applied.
	require.Equal(t, "Nomor IMEI", updated.Label)
	require.Equal(t, "15 digit", updated.Placeholder)
	require.Equal(t, 9, updated.DisplayOrder)
	// Structural attributes untouched.
	require.Equal(t, "imei", updated.Key)
	require.Equal(t, TypeText, updated.Type)
	require.Equal(t, CategorySpec, updated.Category)
	require.Nil(t, updated.TableConfig)
}

func TestDeleteRefusesWhileReferenced(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateFieldInput{
		Key: "warna", Label: "Warna", Category: CategorySpec, Type: TypeText,
	})
	require.NoError(t, err)

	repo.refs[created.ID] = 2
	err = svc.Delete(ctx, 1, created.ID)
	require.ErrorIs(t, err, httpx.ErrInUse)

	repo.refs[created.ID] = 0
	require.NoError(t, svc.Delete(ctx, 1, created.ID))
}

func TestListCachesAndMutationsInvalidate(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateFieldInput{
		Key: "warna", Label: "Warna", Category: CategorySpec, Type: TypeText,
	})
	require.NoError(t, err)

	_, err = svc.List(ctx, 1)
	require.NoError(t, err)
	_, err = svc.List(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls, "second list should be served from cache")

	newLabel := "Warna Unit"
	_, err = svc.Update(ctx, 1, created.ID, UpdateFieldInput{Label: &newLabel})
	require.NoError(t, err)

	defs, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, repo.listCalls, "mutation must invalidate the cached listing")
	require.Len(t, defs, 1)
	require.Equal(t, "Warna Unit", defs[0].Label)
}
