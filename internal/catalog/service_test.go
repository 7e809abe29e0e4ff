package catalog

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/resibilis/backend-resibilis/internal/common"
)

type memStore struct {
	rows  map[string]Row
	lists int
}

func newMemStore() *memStore {
	return &memStore{rows: map[string]Row{}}
}

func (m *memStore) Insert(_ context.Context, row Row) (Row, error) {
	var id pgtype.UUID
	_ = id.Scan(uuid.NewString())
	row.ID = id
	row.CreatedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}
	m.rows[uuidString(id)] = row
	return row, nil
}

func (m *memStore) ByID(_ context.Context, userID, id pgtype.UUID) (Row, error) {
	row, ok := m.rows[uuidString(id)]
	if !ok || row.UserID != userID {
		return Row{}, pgx.ErrNoRows
	}
	return row, nil
}

func (m *memStore) List(_ context.Context, userID pgtype.UUID, filter ListFilter) ([]Row, int64, error) {
	m.lists++
	matched := make([]Row, 0)
	for _, row := range m.rows {
		if row.UserID != userID {
			continue
		}
		if filter.ActiveOnly && !row.IsActive {
			continue
		}
		if filter.Type != "" && row.Type != filter.Type {
			continue
		}
		matched = append(matched, row)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

func (m *memStore) Update(_ context.Context, row Row) (Row, error) {
	stored, ok := m.rows[uuidString(row.ID)]
	if !ok || stored.UserID != row.UserID {
		return Row{}, pgx.ErrNoRows
	}
	row.CreatedAt = stored.CreatedAt
	m.rows[uuidString(row.ID)] = row
	return row, nil
}

func (m *memStore) Delete(_ context.Context, userID, id pgtype.UUID) (int64, error) {
	row, ok := m.rows[uuidString(id)]
	if !ok || row.UserID != userID {
		return 0, nil
	}
	delete(m.rows, uuidString(id))
	return 1, nil
}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &Service{
		Store:    store,
		Cache:    NewCache(client, time.Minute),
		Validate: validator.New(),
	}
}

func price(v float64) *float64 { return &v }

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t, newMemStore())
	user := uuid.NewString()

	item, err := svc.Create(context.Background(), user, Input{
		Name:         "  Haircut ",
		Type:         TypeService,
		DefaultPrice: price(350),
		Unit:         "session",
	})
	require.NoError(t, err)
	require.Equal(t, "Haircut", item.Name)
	require.Equal(t, TypeService, item.Type)
	require.True(t, item.IsActive)
	require.NotNil(t, item.DefaultPrice)
	require.Equal(t, 350.0, *item.DefaultPrice)

	got, err := svc.Get(context.Background(), user, item.ID)
	require.NoError(t, err)
	require.Equal(t, item.ID, got.ID)
}

func TestCreateDefaultsToProduct(t *testing.T) {
	svc := newTestService(t, newMemStore())

	item, err := svc.Create(context.Background(), uuid.NewString(), Input{Name: "Shampoo"})
	require.NoError(t, err)
	require.Equal(t, TypeProduct, item.Type)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t, newMemStore())
	user := uuid.NewString()

	cases := []struct {
		name  string
		input Input
	}{
		{"empty name", Input{}},
		{"bad type", Input{Name: "x", Type: "subscription"}},
		{"negative price", Input{Name: "x", DefaultPrice: price(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), user, tc.input)
			require.Error(t, err)
			var appErr *common.AppError
			require.ErrorAs(t, err, &appErr)
			require.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestListCachesAndInvalidates(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store)
	user := uuid.NewString()

	_, err := svc.Create(context.Background(), user, Input{Name: "Haircut"})
	require.NoError(t, err)

	_, total, err := svc.List(context.Background(), user, false, "", 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	listsAfterFirst := store.lists

	// second identical read served from cache
	_, _, err = svc.List(context.Background(), user, false, "", 1, 20)
	require.NoError(t, err)
	require.Equal(t, listsAfterFirst, store.lists)

	// a write invalidates the user's cached lists
	_, err = svc.Create(context.Background(), user, Input{Name: "Shave"})
	require.NoError(t, err)

	items, total, err := svc.List(context.Background(), user, false, "", 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	require.Greater(t, store.lists, listsAfterFirst)
}

func TestListFilters(t *testing.T) {
	svc := newTestService(t, newMemStore())
	user := uuid.NewString()

	_, err := svc.Create(context.Background(), user, Input{Name: "Haircut", Type: TypeService})
	require.NoError(t, err)
	inactive := false
	_, err = svc.Create(context.Background(), user, Input{Name: "Old product", IsActive: &inactive})
	require.NoError(t, err)

	services, total, err := svc.List(context.Background(), user, false, TypeService, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Haircut", services[0].Name)

	active, total, err := svc.List(context.Background(), user, true, "", 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.True(t, active[0].IsActive)

	_, _, err = svc.List(context.Background(), user, false, "subscription", 1, 20)
	require.Error(t, err)
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t, newMemStore())
	user := uuid.NewString()

	item, err := svc.Create(context.Background(), user, Input{Name: "Haircut", DefaultPrice: price(350)})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), user, item.ID, Input{
		Name:         "Premium haircut",
		Type:         TypeService,
		DefaultPrice: price(500),
	})
	require.NoError(t, err)
	require.Equal(t, "Premium haircut", updated.Name)
	require.Equal(t, 500.0, *updated.DefaultPrice)
}

func TestUpdateWrongUser(t *testing.T) {
	svc := newTestService(t, newMemStore())

	item, err := svc.Create(context.Background(), uuid.NewString(), Input{Name: "Haircut"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), uuid.NewString(), item.ID, Input{Name: "Hijacked"})
	require.True(t, common.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store)
	user := uuid.NewString()

	item, err := svc.Create(context.Background(), user, Input{Name: "Haircut"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), user, item.ID))
	require.Empty(t, store.rows)

	err = svc.Delete(context.Background(), user, item.ID)
	require.True(t, common.IsNotFound(err))
}
