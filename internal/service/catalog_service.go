package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"fims/internal/cache"
	apperrors "fims/internal/errors"
	"fims/internal/model"
	"fims/internal/repository"
)

const itemCacheTTL = 5 * time.Minute

// CatalogService exposes the unauthenticated catalog operations.
type CatalogService interface {
	CreateItem(ctx context.Context, item *model.Item) (string, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	GetItem(ctx context.Context, itemID int64) (*model.Item, error)
}

type catalogService struct {
	store *catalogStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ItemRepository, cache *cache.Client) CatalogService {
	return &catalogService{store: newCatalogStore(repo, cache)}
}

// CreateItem upserts an item by id.
func (s *catalogService) CreateItem(ctx context.Context, item *model.Item) (string, error) {
	if err := validateItem(item); err != nil {
		return "", err
	}
	if err := s.store.Upsert(ctx, item); err != nil {
		return "", fmt.Errorf("add item: %w", err)
	}
	log.Ctx(ctx).Info().Int64("item_id", item.ItemID).Str("name", item.Name).Msg("item added")
	return "Item added.", nil
}

// ListItems returns the whole catalog.
func (s *catalogService) ListItems(ctx context.Context) ([]model.Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// GetItem retrieves an item by id with caching.
func (s *catalogService) GetItem(ctx context.Context, itemID int64) (*model.Item, error) {
	item, err := s.store.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return nil, apperrors.ErrItemNotFound
	}
	return item, nil
}

func validateItem(item *model.Item) error {
	if item == nil {
		return apperrors.ErrInvalidInput
	}
	item.Normalize()
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", apperrors.ErrInvalidInput)
	}
	return nil
}

// catalogStore is the item repository with a read-through cache on the by-id
// path. Every mutation drops the cached entry.
type catalogStore struct {
	repository.ItemRepository
	cache *cache.Client
}

func newCatalogStore(repo repository.ItemRepository, cache *cache.Client) *catalogStore {
	return &catalogStore{ItemRepository: repo, cache: cache}
}

func (c *catalogStore) FindByID(ctx context.Context, itemID int64) (*model.Item, error) {
	if data, _ := c.cache.Get(ctx, cache.ItemKey(itemID)); data != nil {
		var cached model.Item
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	item, err := c.ItemRepository.FindByID(ctx, itemID)
	if err != nil || item == nil {
		return item, err
	}

	if payload, err := json.Marshal(item); err == nil {
		_ = c.cache.Set(ctx, cache.ItemKey(itemID), payload, itemCacheTTL)
	}
	return item, nil
}

func (c *catalogStore) Upsert(ctx context.Context, item *model.Item) error {
	defer c.invalidate(ctx, item.ItemID)
	return c.ItemRepository.Upsert(ctx, item)
}

func (c *catalogStore) Delete(ctx context.Context, itemID int64) error {
	defer c.invalidate(ctx, itemID)
	return c.ItemRepository.Delete(ctx, itemID)
}

func (c *catalogStore) IncrementQuantity(ctx context.Context, itemID int64, delta int) (*model.Item, error) {
	defer c.invalidate(ctx, itemID)
	return c.ItemRepository.IncrementQuantity(ctx, itemID, delta)
}

func (c *catalogStore) invalidate(ctx context.Context, itemID int64) {
	_ = c.cache.Delete(ctx, cache.ItemKey(itemID))
}

// trimmed reports whether s is empty after trimming, returning the trimmed value.
func trimmed(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}
