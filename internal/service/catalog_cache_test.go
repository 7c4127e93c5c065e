package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fims/internal/cache"
	"fims/internal/credential"
	"fims/internal/db"
	apperrors "fims/internal/errors"
	"fims/internal/model"
	"fims/internal/report"
	"fims/internal/repository"
)

type cachedServices struct {
	accounts AccountService
	catalog  CatalogService
	items    repository.ItemRepository
	redis    *miniredis.Miniredis
}

func newCachedServices(t *testing.T) cachedServices {
	t.Helper()
	gormDB, err := db.Open(db.Config{Driver: db.DriverSQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB, false))

	mr := miniredis.RunT(t)
	client := cache.Wrap(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = client.Close() })

	items := repository.NewItemRepository(gormDB)
	engine := report.NewEngine(items, repository.NewReportRepository(gormDB), report.DefaultThresholds())
	codec := credential.NewBcryptCodec(bcrypt.MinCost)

	return cachedServices{
		accounts: NewAccountService(repository.NewAccountRepository(gormDB), items, engine, codec, client),
		catalog:  NewCatalogService(items, client),
		items:    items,
		redis:    mr,
	}
}

func TestCatalogCache_ReadThrough(t *testing.T) {
	s := newCachedServices(t)
	ctx := context.Background()

	_, err := s.catalog.CreateItem(ctx, &model.Item{ItemID: 7, Name: "Denim", Quantity: 10, Price: 2})
	require.NoError(t, err)
	assert.False(t, s.redis.Exists(cache.ItemKey(7)))

	item, err := s.catalog.GetItem(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)
	require.True(t, s.redis.Exists(cache.ItemKey(7)))

	raw, err := s.redis.Get(cache.ItemKey(7))
	require.NoError(t, err)
	var cached model.Item
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, "Denim", cached.Name)
	assert.Positive(t, s.redis.TTL(cache.ItemKey(7)))

	// Writing straight to the repository skips invalidation, so the cached
	// copy keeps answering.
	_, err = s.items.IncrementQuantity(ctx, 7, 100)
	require.NoError(t, err)
	item, err = s.catalog.GetItem(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)
}

func TestCatalogCache_MutationsInvalidate(t *testing.T) {
	s := newCachedServices(t)
	ctx := context.Background()

	_, err := s.accounts.Signup(ctx, "Supplier", "acme", "pw")
	require.NoError(t, err)
	_, err = s.accounts.Signup(ctx, "InventoryManager", "mia", "pw")
	require.NoError(t, err)
	_, err = s.catalog.CreateItem(ctx, &model.Item{ItemID: 7, Name: "Denim", Quantity: 10, Price: 2})
	require.NoError(t, err)

	warm := func(t *testing.T) {
		t.Helper()
		_, err := s.catalog.GetItem(ctx, 7)
		require.NoError(t, err)
		require.True(t, s.redis.Exists(cache.ItemKey(7)))
	}

	t.Run("order", func(t *testing.T) {
		warm(t)
		_, err := s.accounts.OrderFabric(ctx, "acme", 7, 5)
		require.NoError(t, err)
		assert.False(t, s.redis.Exists(cache.ItemKey(7)))

		item, err := s.catalog.GetItem(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 15, item.Quantity)
	})

	t.Run("update", func(t *testing.T) {
		warm(t)
		_, err := s.accounts.UpdateItem(ctx, "mia", &model.Item{ItemID: 7, Name: "Denim", Quantity: 40, Category: "Cotton", Price: 3})
		require.NoError(t, err)
		assert.False(t, s.redis.Exists(cache.ItemKey(7)))

		item, err := s.catalog.GetItem(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 40, item.Quantity)
		assert.Equal(t, "Cotton", item.Category)
		assert.Equal(t, 3.0, item.Price)
	})

	t.Run("create overwrites", func(t *testing.T) {
		warm(t)
		_, err := s.catalog.CreateItem(ctx, &model.Item{ItemID: 7, Name: "Raw Denim", Quantity: 1})
		require.NoError(t, err)

		item, err := s.catalog.GetItem(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "Raw Denim", item.Name)
	})

	t.Run("delete", func(t *testing.T) {
		warm(t)
		_, err := s.accounts.DeleteItem(ctx, "mia", 7)
		require.NoError(t, err)
		assert.False(t, s.redis.Exists(cache.ItemKey(7)))

		_, err = s.catalog.GetItem(ctx, 7)
		assert.ErrorIs(t, err, apperrors.ErrItemNotFound)
		assert.False(t, s.redis.Exists(cache.ItemKey(7)), "misses are not cached")
	})
}

func TestCatalogCache_CorruptEntryFallsBack(t *testing.T) {
	s := newCachedServices(t)
	ctx := context.Background()

	_, err := s.catalog.CreateItem(ctx, &model.Item{ItemID: 3, Name: "Linen", Quantity: 4})
	require.NoError(t, err)
	require.NoError(t, s.redis.Set(cache.ItemKey(3), "{not json"))

	item, err := s.catalog.GetItem(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Linen", item.Name)

	raw, err := s.redis.Get(cache.ItemKey(3))
	require.NoError(t, err)
	assert.JSONEq(t, mustJSON(t, item), raw)
}

func TestCatalogCache_RedisDownFallsThrough(t *testing.T) {
	s := newCachedServices(t)
	ctx := context.Background()

	_, err := s.catalog.CreateItem(ctx, &model.Item{ItemID: 9, Name: "Silk", Quantity: 2})
	require.NoError(t, err)
	s.redis.Close()

	item, err := s.catalog.GetItem(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "Silk", item.Name)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
