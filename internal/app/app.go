package app

import (
	"context"
	"fmt"
	"time"

	"github.com/you-humble/dealership/internal/closer"
	"github.com/you-humble/dealership/internal/config"
	envconfig "github.com/you-humble/dealership/internal/config/env"
	"github.com/you-humble/dealership/internal/importer"
	"github.com/you-humble/dealership/internal/logger"
	"github.com/you-humble/dealership/internal/model"
)

type app struct {
	di *di
}

func New(ctx context.Context) (*app, error) {
	a := &app{}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *app) Run(ctx context.Context) error { return a.run(ctx) }

func (a *app) init(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initDI,
		a.initTables,
		a.initSeed,
	}

	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) initConfig(_ context.Context) error {
	return config.Load()
}

func (a *app) initLogger(_ context.Context) error {
	return logger.Init(
		config.C().Logger.Level(),
		config.C().Logger.AsJSON(),
	)
}

func (a *app) initDI(_ context.Context) error {
	a.di = NewDI()
	return nil
}

func (a *app) initTables(ctx context.Context) error {
	if config.C().Storage.Engine() != envconfig.EnginePostgres {
		return nil
	}

	if err := a.di.Migrator(ctx).Up(); err != nil {
		logger.Error(ctx, "failed to apply migrations", logger.ErrorF(err))
		return err
	}
	return nil
}

// initSeed imports vehicles from the seed CSV into an empty repository.
func (a *app) initSeed(ctx context.Context) error {
	seedPath := config.C().Storage.SeedCSVPath()
	if seedPath == "" {
		return nil
	}

	repo := a.di.VehicleRepository(ctx)

	existing, err := repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list vehicles: %w", err)
	}
	if len(existing) > 0 {
		logger.Info(ctx, "repository already populated, skipping seed",
			logger.Int("vehicles", len(existing)),
		)
		return nil
	}

	report, err := importer.ReadCarsFile(seedPath)
	if err != nil {
		return fmt.Errorf("read seed csv: %w", err)
	}

	for _, v := range report.Vehicles {
		if err := repo.Add(ctx, v); err != nil {
			return fmt.Errorf("seed vehicle %s: %w", v.ID, err)
		}
	}

	logger.Info(ctx, "seed import finished",
		logger.Int("imported", len(report.Vehicles)),
		logger.Int("skipped", report.Skipped),
	)
	return nil
}

// run walks one business day through the whole stack: buy vehicles, stock
// parts, move stock around, sell, repair and print the daily report.
func (a *app) run(ctx context.Context) error {
	defer gracefulShutdown()

	logger.Info(ctx, "🚀 dealership demo running",
		logger.String("engine", config.C().Storage.Engine()),
	)

	financial := a.di.FinancialService(ctx)
	inventory := a.di.InventoryService(ctx)
	reporting := a.di.ReportingService(ctx)

	car, err := model.NewCar(model.CarParams{
		Brand:        "Renault",
		Model:        "Clio",
		Year:         2019,
		Price:        9500,
		Mileage:      64000,
		FuelType:     "LPG",
		Transmission: "Manual",
		OwnerType:    "First",
	})
	if err != nil {
		return err
	}
	if _, err := financial.RecordVehiclePurchase(ctx, car, 7800, "AutoTrade SARL"); err != nil {
		return err
	}

	bike, err := model.NewBike(model.BikeParams{
		Brand: "Yamaha",
		Model: "MT-07",
		Year:  2021,
		Price: 6200,
		Style: "Naked",
	})
	if err != nil {
		return err
	}
	if _, err := financial.RecordVehiclePurchase(ctx, bike, 5100, "MotoMarket"); err != nil {
		return err
	}

	if _, err := financial.RecordSparePartPurchase(ctx, "Brake pads", "BP-204", 25, 10, "PartsDepot"); err != nil {
		return err
	}

	if err := inventory.MoveToShowroom(ctx, car.ID); err != nil {
		return err
	}
	if err := inventory.MoveToGarage(ctx, bike.ID); err != nil {
		return err
	}

	customer := model.NewCustomer("Ada", "Martin", "ada.martin@example.com")

	if err := inventory.ReleaseFromShowroom(ctx, car.ID); err != nil {
		return err
	}
	if _, err := financial.RecordSale(ctx, car, customer, 9500); err != nil {
		return err
	}

	if _, err := financial.RecordRepair(ctx, bike, customer, "front brake pads", 80, []string{"BP-204", "BP-204"}); err != nil {
		return err
	}

	report := reporting.DailyReport(ctx, time.Now().UTC())
	logger.Info(ctx, "📊 daily report",
		logger.Time("date", report.Date),
		logger.Int("sales", report.SalesCount),
		logger.Float64("sales_total", report.SalesTotal),
		logger.Int("repairs", report.RepairsCount),
		logger.Float64("repairs_total", report.RepairsTotal),
		logger.Int("vehicle_purchases", report.VehiclePurchasesCount),
		logger.Float64("vehicle_purchases_total", report.VehiclePurchasesTotal),
		logger.Int("parts_purchases", report.PartsPurchasesCount),
		logger.Float64("parts_purchases_total", report.PartsPurchasesTotal),
	)

	return nil
}

func gracefulShutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(), // do not inherit cancellation from ctx
		10*time.Second,
	)
	defer cancel()

	closer.CloseAll(ctx)
	logger.Info(ctx, "✅ Dealership stopped")
}
