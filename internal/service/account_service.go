package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"fims/internal/account"
	"fims/internal/cache"
	"fims/internal/credential"
	apperrors "fims/internal/errors"
	"fims/internal/model"
	"fims/internal/repository"
)

// ReportEngine generates and reads report snapshots.
type ReportEngine interface {
	account.ReportGenerator
	Get(ctx context.Context, reportID uint) (*model.Report, error)
	List(ctx context.Context) ([]model.Report, error)
}

// ReportResult is a stored report together with its live stock alerts.
type ReportResult struct {
	Report *model.Report
	Alerts []string
}

// AccountService handles credential checks and the role-specific operations.
// Privileged operations take the acting username and fail with
// errors.ErrUnauthorized unless it resolves to the required role.
type AccountService interface {
	Signup(ctx context.Context, role, username, password string) (account.Account, error)
	Login(ctx context.Context, username, password string) (message string, role model.Role, err error)
	Logout(ctx context.Context, username string) (string, error)

	CreateAccount(ctx context.Context, actor, role, username, password string) (string, error)
	ListAccounts(ctx context.Context, actor string) ([]model.User, error)
	GenerateReport(ctx context.Context, actor string) (*ReportResult, error)
	ListReports(ctx context.Context, actor string) ([]model.Report, error)
	GetReport(ctx context.Context, actor string, reportID uint) (*ReportResult, error)

	AddItem(ctx context.Context, actor string, item *model.Item) (string, error)
	UpdateItem(ctx context.Context, actor string, item *model.Item) (string, error)
	DeleteItem(ctx context.Context, actor string, itemID int64) (string, error)

	OrderFabric(ctx context.Context, actor string, itemID int64, quantity int) (string, error)
}

type accountService struct {
	accounts repository.AccountRepository
	catalog  *catalogStore
	reports  ReportEngine
	codec    credential.Codec
}

// NewAccountService creates a new account service.
func NewAccountService(
	accounts repository.AccountRepository,
	items repository.ItemRepository,
	reports ReportEngine,
	codec credential.Codec,
	cache *cache.Client,
) AccountService {
	return &accountService{
		accounts: accounts,
		catalog:  newCatalogStore(items, cache),
		reports:  reports,
		codec:    codec,
	}
}

// Signup creates or overwrites the account for username.
func (s *accountService) Signup(ctx context.Context, role, username, password string) (account.Account, error) {
	user, err := s.newUser(role, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}
	log.Ctx(ctx).Info().Str("username", user.Username).Stringer("role", user.Role).Msg("account signed up")
	return account.Decode(user), nil
}

// Login checks the password of username.
func (s *accountService) Login(ctx context.Context, username, password string) (string, model.Role, error) {
	acc, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return "", "", fmt.Errorf("find account: %w", err)
	}
	if acc == nil {
		return "", "", apperrors.ErrUserNotFound
	}
	if !s.codec.Verify(password, acc.PasswordHash()) {
		log.Ctx(ctx).Warn().Str("username", acc.Username()).Msg("login rejected")
		return "", "", apperrors.ErrInvalidCredentials
	}
	return acc.LogIn(), acc.Role(), nil
}

// Logout acknowledges a logout. There is no session state to clear.
func (s *accountService) Logout(ctx context.Context, username string) (string, error) {
	acc, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("find account: %w", err)
	}
	if acc == nil {
		return "", apperrors.ErrUserNotFound
	}
	return acc.LogOut(), nil
}

// CreateAccount lets an administrator create an account of any creatable role.
func (s *accountService) CreateAccount(ctx context.Context, actor, role, username, password string) (string, error) {
	admin, err := resolveActor[*account.Administrator](ctx, s.accounts, actor, "admin")
	if err != nil {
		return "", err
	}
	user, err := s.newUser(role, username, password)
	if err != nil {
		return "", err
	}
	msg, err := admin.CreateAccount(ctx, s.accounts, user)
	if err != nil {
		return "", fmt.Errorf("save account: %w", err)
	}
	log.Ctx(ctx).Info().Str("admin", admin.Username()).Str("username", user.Username).Msg("account created")
	return msg, nil
}

// ListAccounts returns every stored account.
func (s *accountService) ListAccounts(ctx context.Context, actor string) ([]model.User, error) {
	if _, err := resolveActor[*account.Administrator](ctx, s.accounts, actor, "admin"); err != nil {
		return nil, err
	}
	users, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return users, nil
}

// GenerateReport stores a report snapshot and computes its stock alerts.
func (s *accountService) GenerateReport(ctx context.Context, actor string) (*ReportResult, error) {
	admin, err := resolveActor[*account.Administrator](ctx, s.accounts, actor, "admin")
	if err != nil {
		return nil, err
	}
	report, alerts, err := admin.GenerateReport(ctx, s.reports)
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}
	log.Ctx(ctx).Info().
		Uint("report_id", report.ReportID).
		Str("month", report.Month).
		Float64("income", report.Income).
		Int("alerts", len(alerts)).
		Msg("report generated")
	return &ReportResult{Report: report, Alerts: alerts}, nil
}

// ListReports returns stored reports, newest first.
func (s *accountService) ListReports(ctx context.Context, actor string) ([]model.Report, error) {
	if _, err := resolveActor[*account.Administrator](ctx, s.accounts, actor, "admin"); err != nil {
		return nil, err
	}
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// GetReport loads a stored report and checks the live catalog against its
// thresholds.
func (s *accountService) GetReport(ctx context.Context, actor string, reportID uint) (*ReportResult, error) {
	if _, err := resolveActor[*account.Administrator](ctx, s.accounts, actor, "admin"); err != nil {
		return nil, err
	}
	report, err := s.reports.Get(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	alerts, err := s.reports.CheckStockAlert(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return &ReportResult{Report: report, Alerts: alerts}, nil
}

// AddItem upserts an item on behalf of an inventory manager.
func (s *accountService) AddItem(ctx context.Context, actor string, item *model.Item) (string, error) {
	manager, err := resolveActor[*account.InventoryManager](ctx, s.accounts, actor, "inventory manager")
	if err != nil {
		return "", err
	}
	if err := validateItem(item); err != nil {
		return "", err
	}
	msg, err := manager.AddItem(ctx, s.catalog, item)
	if err != nil {
		return "", fmt.Errorf("add item: %w", err)
	}
	log.Ctx(ctx).Info().Str("manager", manager.Username()).Int64("item_id", item.ItemID).Msg("item added")
	return msg, nil
}

// UpdateItem replaces an item on behalf of an inventory manager.
func (s *accountService) UpdateItem(ctx context.Context, actor string, item *model.Item) (string, error) {
	manager, err := resolveActor[*account.InventoryManager](ctx, s.accounts, actor, "inventory manager")
	if err != nil {
		return "", err
	}
	if err := validateItem(item); err != nil {
		return "", err
	}
	msg, err := manager.UpdateItem(ctx, s.catalog, item)
	if err != nil {
		return "", fmt.Errorf("update item: %w", err)
	}
	log.Ctx(ctx).Info().Str("manager", manager.Username()).Int64("item_id", item.ItemID).Msg("item updated")
	return msg, nil
}

// DeleteItem removes an item on behalf of an inventory manager.
func (s *accountService) DeleteItem(ctx context.Context, actor string, itemID int64) (string, error) {
	manager, err := resolveActor[*account.InventoryManager](ctx, s.accounts, actor, "inventory manager")
	if err != nil {
		return "", err
	}
	msg, err := manager.DeleteItem(ctx, s.catalog, itemID)
	if err != nil {
		return "", fmt.Errorf("delete item: %w", err)
	}
	log.Ctx(ctx).Info().Str("manager", manager.Username()).Int64("item_id", itemID).Msg("item deleted")
	return msg, nil
}

// OrderFabric restocks an item on behalf of a supplier.
func (s *accountService) OrderFabric(ctx context.Context, actor string, itemID int64, quantity int) (string, error) {
	supplier, err := resolveActor[*account.Supplier](ctx, s.accounts, actor, "supplier")
	if err != nil {
		return "", err
	}
	msg, err := supplier.OrderFabric(ctx, s.catalog, itemID, quantity)
	if err != nil {
		return "", fmt.Errorf("order fabric: %w", err)
	}
	log.Ctx(ctx).Info().
		Str("supplier", supplier.Username()).
		Int64("item_id", itemID).
		Int("quantity", quantity).
		Msg("fabric ordered")
	return msg, nil
}

// newUser validates signup input and hashes the password.
func (s *accountService) newUser(role, username, password string) (*model.User, error) {
	r, ok := model.ParseRole(role)
	if !ok {
		return nil, apperrors.ErrInvalidRole
	}
	name, ok := trimmed(username)
	if !ok {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrInvalidInput)
	}
	if _, ok := trimmed(password); !ok {
		return nil, fmt.Errorf("%w: password is required", apperrors.ErrInvalidInput)
	}
	hash, err := s.codec.Hash(password)
	if errors.Is(err, credential.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err != nil {
		return nil, err
	}
	return &model.User{Username: name, PasswordHash: hash, Role: r}, nil
}

// resolveActor loads username and requires it to be the variant T. A missing
// account is unauthorized too.
func resolveActor[T account.Account](ctx context.Context, repo repository.AccountRepository, username, label string) (T, error) {
	var zero T
	acc, err := repo.FindByUsername(ctx, username)
	if err != nil {
		return zero, fmt.Errorf("find account: %w", err)
	}
	actor, ok := acc.(T)
	if !ok {
		return zero, fmt.Errorf("%w %s", apperrors.ErrUnauthorized, label)
	}
	return actor, nil
}
