package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fims/internal/credential"
	"fims/internal/db"
	apperrors "fims/internal/errors"
	"fims/internal/model"
	"fims/internal/report"
	"fims/internal/repository"
)

func newSQLiteServices(t *testing.T) (AccountService, CatalogService) {
	t.Helper()
	gormDB, err := db.Open(db.Config{Driver: db.DriverSQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB, false))

	accounts := repository.NewAccountRepository(gormDB)
	items := repository.NewItemRepository(gormDB)
	engine := report.NewEngine(items, repository.NewReportRepository(gormDB), report.DefaultThresholds())
	codec := credential.NewBcryptCodec(bcrypt.MinCost)

	return NewAccountService(accounts, items, engine, codec, nil), NewCatalogService(items, nil)
}

func TestSignupLoginRoundTrip(t *testing.T) {
	accounts, _ := newSQLiteServices(t)
	ctx := context.Background()

	for _, role := range model.CreatableRoles {
		t.Run(role.String(), func(t *testing.T) {
			username := "user-" + role.String()
			_, err := accounts.Signup(ctx, role.String(), username, "pa55word")
			require.NoError(t, err)

			msg, got, err := accounts.Login(ctx, username, "pa55word")
			require.NoError(t, err)
			assert.Equal(t, role, got)
			assert.Equal(t, username+" has logged in.", msg)

			_, _, err = accounts.Login(ctx, username, "wrong")
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	}

	_, _, err := accounts.Login(ctx, "nobody", "pa55word")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestSignupOverwritesExistingUsername(t *testing.T) {
	accounts, _ := newSQLiteServices(t)
	ctx := context.Background()

	_, err := accounts.Signup(ctx, "Supplier", "kim", "first")
	require.NoError(t, err)
	_, err = accounts.Signup(ctx, "Admin", "kim", "second")
	require.NoError(t, err)

	_, role, err := accounts.Login(ctx, "kim", "second")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)
}

func TestSupplierOrderAndReport(t *testing.T) {
	accounts, catalog := newSQLiteServices(t)
	ctx := context.Background()

	_, err := accounts.Signup(ctx, "Supplier", "acme", "pw")
	require.NoError(t, err)
	_, err = accounts.Signup(ctx, "Admin", "root", "pw")
	require.NoError(t, err)

	_, err = catalog.CreateItem(ctx, &model.Item{ItemID: 7, Name: "Denim", Quantity: 10, Price: 2})
	require.NoError(t, err)

	msg, err := accounts.OrderFabric(ctx, "acme", 7, 5)
	require.NoError(t, err)
	assert.Equal(t, "Supplier 'acme' ordered 5 units of 'Denim'.", msg)

	item, err := catalog.GetItem(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 15, item.Quantity)

	_, err = accounts.OrderFabric(ctx, "acme", 8, 5)
	assert.ErrorIs(t, err, apperrors.ErrItemNotFound)

	first, err := accounts.GenerateReport(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, 30.0, first.Report.Income)
	assert.Equal(t, []string{"LOW STOCK: Denim (15)"}, first.Alerts)

	second, err := accounts.GenerateReport(ctx, "root")
	require.NoError(t, err)
	assert.NotEqual(t, first.Report.ReportID, second.Report.ReportID)

	_, err = accounts.GenerateReport(ctx, "acme")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
