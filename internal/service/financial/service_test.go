package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/dealership/internal/logger"
	"github.com/you-humble/dealership/internal/model"
	"github.com/you-humble/dealership/internal/repository/vehicle/csvrepo"
)

func TestMain(m *testing.M) {
	logger.SetNopLogger()
	os.Exit(m.Run())
}

func newRepo(t *testing.T) *csvrepo.Repository {
	t.Helper()
	repo, err := csvrepo.Open(filepath.Join(t.TempDir(), "vehicles.csv"))
	require.NoError(t, err)
	return repo
}

func newCar(t *testing.T) *model.Vehicle {
	t.Helper()
	v, err := model.NewCar(model.CarParams{
		Brand: "Renault", Model: "Clio", Year: 2018, Price: 7500,
		Mileage: 42000, FuelType: "LPG", Transmission: "Manual", OwnerType: "First",
	})
	require.NoError(t, err)
	return v
}

func TestRecordSale(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newRepo(t)
	svc := NewFinancialService(repo)

	car := newCar(t)
	require.NoError(t, repo.Add(ctx, car))

	customer := model.NewCustomer("Ada", "Martin", "ada.martin@example.com")

	tx, err := svc.RecordSale(ctx, car, customer, 9500)
	require.NoError(t, err)
	assert.Equal(t, model.KindSale, tx.Kind)
	assert.Equal(t, 9500.0, tx.Amount)
	require.NotNil(t, tx.Sale)
	assert.Equal(t, car.ID, tx.Sale.VehicleID)
	assert.Equal(t, customer.ID, tx.Sale.CustomerID)

	assert.True(t, car.Sold)
	assert.False(t, car.Available)

	stored, err := repo.GetRequired(ctx, car.ID)
	require.NoError(t, err)
	assert.True(t, stored.Sold)
	assert.False(t, stored.Available)
}

func TestRecordSaleTwiceLeavesOneEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newRepo(t)
	svc := NewFinancialService(repo)

	car := newCar(t)
	require.NoError(t, repo.Add(ctx, car))
	customer := model.NewCustomer("Ada", "Martin", "ada.martin@example.com")

	_, err := svc.RecordSale(ctx, car, customer, 9500)
	require.NoError(t, err)

	_, err = svc.RecordSale(ctx, car, customer, 9500)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)

	assert.Len(t, svc.AllTransactions(), 1)
}

func TestRecordSaleUnknownVehicle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewFinancialService(newRepo(t))

	car := newCar(t) // never added to the repository
	customer := model.NewCustomer("Ada", "Martin", "ada.martin@example.com")

	_, err := svc.RecordSale(ctx, car, customer, 9500)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrVehicleNotFound)
	assert.Empty(t, svc.AllTransactions())
}

func TestRecordVehiclePurchase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newRepo(t)
	svc := NewFinancialService(repo)

	car := newCar(t)
	tx, err := svc.RecordVehiclePurchase(ctx, car, 7800, "AutoTrade SARL")
	require.NoError(t, err)
	assert.Equal(t, model.KindVehiclePurchase, tx.Kind)
	assert.Equal(t, 7800.0, tx.Amount)
	require.NotNil(t, tx.VehiclePurchase)
	assert.Equal(t, "AutoTrade SARL", tx.VehiclePurchase.Supplier)

	_, err = repo.GetRequired(ctx, car.ID)
	require.NoError(t, err)
}

func TestRecordVehiclePurchaseDuplicate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewFinancialService(newRepo(t))

	car := newCar(t)
	_, err := svc.RecordVehiclePurchase(ctx, car, 7800, "AutoTrade SARL")
	require.NoError(t, err)

	_, err = svc.RecordVehiclePurchase(ctx, car, 7800, "AutoTrade SARL")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrDuplicate)

	assert.Len(t, svc.AllTransactions(), 1, "the failed purchase is not in the ledger")
}

func TestRecordSparePartPurchaseUpsertsStock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewFinancialService(newRepo(t))

	_, err := svc.RecordSparePartPurchase(ctx, "Brake pads", "BP-1", 25, 10, "PartsDepot")
	require.NoError(t, err)

	tx, err := svc.RecordSparePartPurchase(ctx, "Brake pads", "BP-1", 25, 5, "PartsDepot")
	require.NoError(t, err)
	assert.Equal(t, model.KindSparePartPurchase, tx.Kind)
	assert.Equal(t, 125.0, tx.Amount)

	stock := svc.SparePartsStock()
	require.Len(t, stock, 1)
	assert.Equal(t, "BP-1", stock[0].Reference)
	assert.Equal(t, 15, stock[0].Quantity)
}

func TestRecordSparePartPurchaseRejectsNegativeQuantity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewFinancialService(newRepo(t))

	_, err := svc.RecordSparePartPurchase(ctx, "Brake pads", "BP-1", 25, -2, "PartsDepot")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Empty(t, svc.AllTransactions())
	assert.Empty(t, svc.SparePartsStock())
}

func TestRecordRepair(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewFinancialService(newRepo(t))

	_, err := svc.RecordSparePartPurchase(ctx, "Brake pads", "BP-1", 25, 3, "PartsDepot")
	require.NoError(t, err)

	car := newCar(t)
	customer := model.NewCustomer("Ada", "Martin", "ada.martin@example.com")

	tx, err := svc.RecordRepair(ctx, car, customer, "front pads", 80, []string{"BP-1", "BP-1"})
	require.NoError(t, err)
	assert.Equal(t, model.KindRepair, tx.Kind)
	// labor 80 + two pads at the marked-up 30 each
	assert.InDelta(t, 140.0, tx.Amount, 1e-9)
	require.NotNil(t, tx.Repair)
	assert.Len(t, tx.Repair.PartsUsed, 2)

	stock := svc.SparePartsStock()
	require.Len(t, stock, 1)
	assert.Equal(t, 1, stock[0].Quantity)
}

func TestRecordRepairIsAllOrNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewFinancialService(newRepo(t))

	_, err := svc.RecordSparePartPurchase(ctx, "Brake pads", "BP123", 25, 4, "PartsDepot")
	require.NoError(t, err)

	car := newCar(t)
	customer := model.NewCustomer("Ada", "Martin", "ada.martin@example.com")

	_, err = svc.RecordRepair(ctx, car, customer, "pads and mystery part", 80, []string{"BP123", "NOPE"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)

	stock := svc.SparePartsStock()
	require.Len(t, stock, 1)
	assert.Equal(t, 4, stock[0].Quantity, "no partial decrement on failure")

	// Only the purchase made it to the ledger.
	assert.Len(t, svc.AllTransactions(), 1)
}

func TestRecordRepairInsufficientQuantity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewFinancialService(newRepo(t))

	_, err := svc.RecordSparePartPurchase(ctx, "Brake pads", "BP-1", 25, 1, "PartsDepot")
	require.NoError(t, err)

	car := newCar(t)
	customer := model.NewCustomer("Ada", "Martin", "ada.martin@example.com")

	// Two units requested, one in stock.
	_, err = svc.RecordRepair(ctx, car, customer, "both axles", 80, []string{"BP-1", "BP-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)

	stock := svc.SparePartsStock()
	require.Len(t, stock, 1)
	assert.Equal(t, 1, stock[0].Quantity)
}

func TestAllTransactionsIsASnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewFinancialService(newRepo(t))

	_, err := svc.RecordSparePartPurchase(ctx, "Brake pads", "BP-1", 25, 10, "PartsDepot")
	require.NoError(t, err)

	got := svc.AllTransactions()
	require.Len(t, got, 1)
	got[0].Amount = -1

	again := svc.AllTransactions()
	assert.Equal(t, 250.0, again[0].Amount)
}
