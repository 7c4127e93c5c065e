package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fims/internal/errors"
	"fims/internal/model"
)

// ItemRepository defines catalog persistence operations.
type ItemRepository interface {
	Upsert(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, itemID int64) (*model.Item, error)
	Delete(ctx context.Context, itemID int64) error
	List(ctx context.Context) ([]model.Item, error)
	IncrementQuantity(ctx context.Context, itemID int64, delta int) (*model.Item, error)
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// Upsert inserts the item or replaces every column of the row with the same id.
func (r *itemRepository) Upsert(ctx context.Context, item *model.Item) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(item).Error
	return apperrors.Storage("upsert item", err)
}

// FindByID finds an item by id. A missing item yields nil without error.
func (r *itemRepository) FindByID(ctx context.Context, itemID int64) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage("find item", err)
	}
	return &item, nil
}

// Delete removes the item. Deleting a missing id is a no-op.
func (r *itemRepository) Delete(ctx context.Context, itemID int64) error {
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&model.Item{}).Error
	return apperrors.Storage("delete item", err)
}

// List returns the whole catalog. Rows come back ordered by id, but callers
// should treat the order as unspecified.
func (r *itemRepository) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).Order("item_id").Find(&items).Error; err != nil {
		return nil, apperrors.Storage("list items", err)
	}
	return items, nil
}

// IncrementQuantity adds delta to the stored quantity in a single UPDATE, so
// concurrent orders on the same item cannot lose each other's writes. It
// returns the item as read after the update, or nil if no such item exists.
func (r *itemRepository) IncrementQuantity(ctx context.Context, itemID int64, delta int) (*model.Item, error) {
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("item_id = ?", itemID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta)).Error
	if err != nil {
		return nil, apperrors.Storage("increment item quantity", err)
	}
	// MySQL reports zero affected rows for a no-op update, so existence is
	// decided by reading the row back.
	return r.FindByID(ctx, itemID)
}
