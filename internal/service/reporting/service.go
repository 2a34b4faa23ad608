// Package service builds financial summaries over the transaction ledger.
package service

import (
	"context"
	"time"

	"github.com/you-humble/dealership/internal/logger"
	"github.com/you-humble/dealership/internal/model"
)

type LedgerSource interface {
	AllTransactions() []model.Transaction
}

type service struct {
	ledger LedgerSource
}

func NewReportingService(ledger LedgerSource) *service {
	return &service{ledger: ledger}
}

// DailyReport aggregates every transaction whose timestamp falls on the
// given UTC calendar day. Counts and totals are broken down per kind; the
// matching transactions are included in ledger order.
func (s *service) DailyReport(ctx context.Context, date time.Time) model.DailyReport {
	day := date.UTC()
	report := model.DailyReport{
		Date: time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
	}

	for _, t := range s.ledger.AllTransactions() {
		if !sameDay(t.Timestamp, day) {
			continue
		}
		switch t.Kind {
		case model.KindSale:
			report.SalesCount++
			report.SalesTotal += t.Amount
		case model.KindRepair:
			report.RepairsCount++
			report.RepairsTotal += t.Amount
		case model.KindVehiclePurchase:
			report.VehiclePurchasesCount++
			report.VehiclePurchasesTotal += t.Amount
		case model.KindSparePartPurchase:
			report.PartsPurchasesCount++
			report.PartsPurchasesTotal += t.Amount
		}
		report.Transactions = append(report.Transactions, t)
	}

	logger.Info(ctx, "daily report built",
		logger.Time("date", report.Date),
		logger.Int("transactions", len(report.Transactions)),
	)
	return report
}

func sameDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
