// Package account decodes stored users into role variants. Each variant carries
// only the capabilities its role grants.
package account

import (
	"context"
	"fmt"

	"fims/internal/model"
)

// Account is the behaviour shared by every role variant.
type Account interface {
	ID() uint
	Username() string
	Role() model.Role
	PasswordHash() string
	LogIn() string
	LogOut() string
}

// User is the generic variant. Stored roles this build does not know decode to it.
type User struct {
	id           uint
	username     string
	passwordHash string
	role         model.Role
}

func (u *User) ID() uint             { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) Role() model.Role     { return u.role }
func (u *User) PasswordHash() string { return u.passwordHash }

// LogIn returns the login acknowledgement.
func (u *User) LogIn() string {
	return fmt.Sprintf("%s has logged in.", u.username)
}

// LogOut returns the logout acknowledgement.
func (u *User) LogOut() string {
	return fmt.Sprintf("%s has logged out.", u.username)
}

// Decode returns the variant selected by the stored role tag.
func Decode(u *model.User) Account {
	if u == nil {
		return nil
	}
	base := User{id: u.ID, username: u.Username, passwordHash: u.PasswordHash, role: u.Role}
	switch u.Role {
	case model.RoleAdmin:
		return &Administrator{User: base}
	case model.RoleInventoryManager:
		return &InventoryManager{User: base}
	case model.RoleSupplier:
		return &Supplier{User: base}
	default:
		return &base
	}
}

// Record converts an account back to its stored form.
func Record(a Account) *model.User {
	return &model.User{
		ID:           a.ID(),
		Username:     a.Username(),
		PasswordHash: a.PasswordHash(),
		Role:         a.Role(),
	}
}

// AccountSaver persists accounts.
type AccountSaver interface {
	Upsert(ctx context.Context, user *model.User) error
}

// ItemWriter mutates the catalog.
type ItemWriter interface {
	Upsert(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, itemID int64) error
}

// StockOrderer restocks catalog items.
type StockOrderer interface {
	IncrementQuantity(ctx context.Context, itemID int64, delta int) (*model.Item, error)
}

// ReportGenerator produces report snapshots and their live stock alerts.
type ReportGenerator interface {
	Generate(ctx context.Context) (*model.Report, error)
	CheckStockAlert(ctx context.Context, report *model.Report) ([]string, error)
}
