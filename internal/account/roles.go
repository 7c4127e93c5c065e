package account

import (
	"context"
	"fmt"

	apperrors "fims/internal/errors"
	"fims/internal/model"
)

// Administrator can generate reports and create accounts.
type Administrator struct {
	User
}

// GenerateReport persists a new report snapshot and computes its stock alerts.
func (a *Administrator) GenerateReport(ctx context.Context, gen ReportGenerator) (*model.Report, []string, error) {
	report, err := gen.Generate(ctx)
	if err != nil {
		return nil, nil, err
	}
	alerts, err := gen.CheckStockAlert(ctx, report)
	if err != nil {
		return nil, nil, err
	}
	return report, alerts, nil
}

// CreateAccount saves an account prepared by the caller.
func (a *Administrator) CreateAccount(ctx context.Context, saver AccountSaver, user *model.User) (string, error) {
	if err := saver.Upsert(ctx, user); err != nil {
		return "", err
	}
	return fmt.Sprintf("Account created for %s", user.Username), nil
}

// InventoryManager can add, update and delete catalog items.
type InventoryManager struct {
	User
}

// AddItem upserts item.
func (m *InventoryManager) AddItem(ctx context.Context, w ItemWriter, item *model.Item) (string, error) {
	if err := w.Upsert(ctx, item); err != nil {
		return "", err
	}
	return fmt.Sprintf("Item '%s' added.", item.Name), nil
}

// UpdateItem upserts item. Updating and adding share the same keyed write.
func (m *InventoryManager) UpdateItem(ctx context.Context, w ItemWriter, item *model.Item) (string, error) {
	if err := w.Upsert(ctx, item); err != nil {
		return "", err
	}
	return fmt.Sprintf("Item '%s' updated.", item.Name), nil
}

// DeleteItem removes the item; a missing id is not an error.
func (m *InventoryManager) DeleteItem(ctx context.Context, w ItemWriter, itemID int64) (string, error) {
	if err := w.Delete(ctx, itemID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Item ID %d deleted.", itemID), nil
}

// Supplier can restock catalog items.
type Supplier struct {
	User
}

// OrderFabric adds quantity units to the item's stock in one atomic update.
// Zero and negative quantities are passed through unchanged.
func (s *Supplier) OrderFabric(ctx context.Context, o StockOrderer, itemID int64, quantity int) (string, error) {
	item, err := o.IncrementQuantity(ctx, itemID, quantity)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", apperrors.ErrItemNotFound
	}
	return fmt.Sprintf("Supplier '%s' ordered %d units of '%s'.", s.username, quantity, item.Name), nil
}
