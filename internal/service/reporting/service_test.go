package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/dealership/internal/logger"
	"github.com/you-humble/dealership/internal/model"
)

func TestMain(m *testing.M) {
	logger.SetNopLogger()
	os.Exit(m.Run())
}

type staticLedger struct {
	entries []model.Transaction
}

func (l *staticLedger) AllTransactions() []model.Transaction { return l.entries }

func entry(kind model.TransactionKind, amount float64, ts time.Time) model.Transaction {
	return model.Transaction{
		ID:        uuid.NewString(),
		Timestamp: ts,
		Kind:      kind,
		Amount:    amount,
	}
}

func TestDailyReport(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	morning := day.Add(9 * time.Hour)
	evening := day.Add(19 * time.Hour)
	nextDay := day.AddDate(0, 0, 1).Add(10 * time.Hour)

	ledger := &staticLedger{entries: []model.Transaction{
		entry(model.KindSale, 1000, morning),
		entry(model.KindSale, 2000, evening),
		entry(model.KindRepair, 150, morning),
		entry(model.KindVehiclePurchase, 7800, evening),
		entry(model.KindSparePartPurchase, 250, morning),
		entry(model.KindSale, 9999, nextDay), // outside the requested day
	}}

	svc := NewReportingService(ledger)
	report := svc.DailyReport(context.Background(), day.Add(13*time.Hour))

	assert.Equal(t, day, report.Date)
	assert.Equal(t, 2, report.SalesCount)
	assert.Equal(t, 3000.0, report.SalesTotal)
	assert.Equal(t, 1, report.RepairsCount)
	assert.Equal(t, 150.0, report.RepairsTotal)
	assert.Equal(t, 1, report.VehiclePurchasesCount)
	assert.Equal(t, 7800.0, report.VehiclePurchasesTotal)
	assert.Equal(t, 1, report.PartsPurchasesCount)
	assert.Equal(t, 250.0, report.PartsPurchasesTotal)
	require.Len(t, report.Transactions, 5)
}

func TestDailyReportUsesUTCDayBoundaries(t *testing.T) {
	t.Parallel()

	// 2026-03-14 23:30 UTC expressed in a +02:00 zone is already the 15th
	// locally; the report must still file it under the 14th.
	zone := time.FixedZone("EET", 2*60*60)
	lateUTC := time.Date(2026, time.March, 14, 23, 30, 0, 0, time.UTC)

	ledger := &staticLedger{entries: []model.Transaction{
		entry(model.KindSale, 500, lateUTC.In(zone)),
	}}

	svc := NewReportingService(ledger)

	report := svc.DailyReport(context.Background(), time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, report.SalesCount)

	report = svc.DailyReport(context.Background(), time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, 0, report.SalesCount)
	assert.Empty(t, report.Transactions)
}

func TestDailyReportEmptyLedger(t *testing.T) {
	t.Parallel()

	svc := NewReportingService(&staticLedger{})
	report := svc.DailyReport(context.Background(), time.Now())

	assert.Zero(t, report.SalesCount)
	assert.Zero(t, report.SalesTotal)
	assert.Empty(t, report.Transactions)
}
