package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "fims/internal/errors"
	"fims/internal/model"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Upsert(ctx context.Context, item *model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockCatalog) Delete(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *mockCatalog) IncrementQuantity(ctx context.Context, itemID int64, delta int) (*model.Item, error) {
	args := m.Called(ctx, itemID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

type mockReports struct {
	mock.Mock
}

func (m *mockReports) Generate(ctx context.Context) (*model.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *mockReports) CheckStockAlert(ctx context.Context, report *model.Report) ([]string, error) {
	args := m.Called(ctx, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		role model.Role
		want any
	}{
		{model.RoleAdmin, &Administrator{}},
		{model.RoleInventoryManager, &InventoryManager{}},
		{model.RoleSupplier, &Supplier{}},
		{model.Role("Auditor"), &User{}},
		{model.Role(""), &User{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			acct := Decode(&model.User{ID: 3, Username: "kim", PasswordHash: "h", Role: tt.role})
			require.NotNil(t, acct)
			assert.IsType(t, tt.want, acct)
			assert.Equal(t, uint(3), acct.ID())
			assert.Equal(t, "kim", acct.Username())
			assert.Equal(t, tt.role, acct.Role())
			assert.Equal(t, "h", acct.PasswordHash())
		})
	}

	assert.Nil(t, Decode(nil))
}

func TestRecordRoundTrip(t *testing.T) {
	in := &model.User{ID: 9, Username: "ana", PasswordHash: "digest", Role: model.RoleSupplier}
	out := Record(Decode(in))
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Username, out.Username)
	assert.Equal(t, in.PasswordHash, out.PasswordHash)
	assert.Equal(t, in.Role, out.Role)
}

func TestLogInLogOut(t *testing.T) {
	acct := Decode(&model.User{Username: "ana", Role: model.RoleAdmin})
	assert.Equal(t, "ana has logged in.", acct.LogIn())
	assert.Equal(t, "ana has logged out.", acct.LogOut())
}

func TestInventoryManager(t *testing.T) {
	ctx := context.Background()
	mgr := Decode(&model.User{Username: "mia", Role: model.RoleInventoryManager}).(*InventoryManager)
	item := &model.Item{ItemID: 4, Name: "Linen", Quantity: 10, Category: "Raw", Price: 2.5}

	catalog := new(mockCatalog)
	catalog.On("Upsert", ctx, item).Return(nil).Twice()
	catalog.On("Delete", ctx, int64(4)).Return(nil)

	msg, err := mgr.AddItem(ctx, catalog, item)
	require.NoError(t, err)
	assert.Equal(t, "Item 'Linen' added.", msg)

	msg, err = mgr.UpdateItem(ctx, catalog, item)
	require.NoError(t, err)
	assert.Equal(t, "Item 'Linen' updated.", msg)

	msg, err = mgr.DeleteItem(ctx, catalog, 4)
	require.NoError(t, err)
	assert.Equal(t, "Item ID 4 deleted.", msg)

	catalog.AssertExpectations(t)
}

func TestSupplier_OrderFabric(t *testing.T) {
	ctx := context.Background()
	sup := Decode(&model.User{Username: "sam", Role: model.RoleSupplier}).(*Supplier)

	t.Run("increments stock", func(t *testing.T) {
		catalog := new(mockCatalog)
		catalog.On("IncrementQuantity", ctx, int64(7), 5).Return(&model.Item{ItemID: 7, Name: "Silk", Quantity: 15}, nil)

		msg, err := sup.OrderFabric(ctx, catalog, 7, 5)
		require.NoError(t, err)
		assert.Equal(t, "Supplier 'sam' ordered 5 units of 'Silk'.", msg)
		catalog.AssertExpectations(t)
	})

	t.Run("missing item", func(t *testing.T) {
		catalog := new(mockCatalog)
		catalog.On("IncrementQuantity", ctx, int64(99), 5).Return(nil, nil)

		_, err := sup.OrderFabric(ctx, catalog, 99, 5)
		assert.ErrorIs(t, err, apperrors.ErrItemNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		catalog := new(mockCatalog)
		storageErr := apperrors.Storage("increment item quantity", errors.New("down"))
		catalog.On("IncrementQuantity", ctx, int64(7), 1).Return(nil, storageErr)

		_, err := sup.OrderFabric(ctx, catalog, 7, 1)
		assert.ErrorIs(t, err, apperrors.ErrStorage)
	})
}

func TestAdministrator_GenerateReport(t *testing.T) {
	ctx := context.Background()
	admin := Decode(&model.User{Username: "root", Role: model.RoleAdmin}).(*Administrator)
	report := &model.Report{ReportID: 1, Month: "March", Income: 35, MinThreshold: 100, MaxThreshold: 2000}

	gen := new(mockReports)
	gen.On("Generate", ctx).Return(report, nil)
	gen.On("CheckStockAlert", ctx, report).Return([]string{"LOW STOCK: Silk (15)"}, nil)

	got, alerts, err := admin.GenerateReport(ctx, gen)
	require.NoError(t, err)
	assert.Same(t, report, got)
	assert.Equal(t, []string{"LOW STOCK: Silk (15)"}, alerts)
	gen.AssertExpectations(t)
}
