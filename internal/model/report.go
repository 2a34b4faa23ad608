package model

import "time"

// DailyReport aggregates one day of ledger activity per transaction kind.
type DailyReport struct {
	Date time.Time

	SalesCount int
	SalesTotal float64

	RepairsCount int
	RepairsTotal float64

	VehiclePurchasesCount int
	VehiclePurchasesTotal float64

	PartsPurchasesCount int
	PartsPurchasesTotal float64

	// Transactions holds the day's raw ledger entries, in ledger order.
	Transactions []Transaction
}
