package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/you-humble/dealership/internal/closer"
	"github.com/you-humble/dealership/internal/config"
	envconfig "github.com/you-humble/dealership/internal/config/env"
	"github.com/you-humble/dealership/internal/facility"
	"github.com/you-humble/dealership/internal/migrator"
	"github.com/you-humble/dealership/internal/model"
	"github.com/you-humble/dealership/internal/repository/vehicle"
	"github.com/you-humble/dealership/internal/repository/vehicle/csvrepo"
	"github.com/you-humble/dealership/internal/repository/vehicle/pgrepo"
	finservice "github.com/you-humble/dealership/internal/service/financial"
	invservice "github.com/you-humble/dealership/internal/service/inventory"
	repservice "github.com/you-humble/dealership/internal/service/reporting"
)

type FinancialService interface {
	RecordSale(ctx context.Context, v *model.Vehicle, customer *model.Customer, price float64) (*model.Transaction, error)
	RecordRepair(ctx context.Context, v *model.Vehicle, customer *model.Customer, description string, laborCost float64, partRefs []string) (*model.Transaction, error)
	RecordVehiclePurchase(ctx context.Context, v *model.Vehicle, price float64, supplier string) (*model.Transaction, error)
	RecordSparePartPurchase(ctx context.Context, name, reference string, purchasePrice float64, quantity int, supplier string) (*model.Transaction, error)
	AllTransactions() []model.Transaction
	SparePartsStock() []model.SparePart
}

type ReportingService interface {
	DailyReport(ctx context.Context, date time.Time) model.DailyReport
}

type InventoryService interface {
	MoveToShowroom(ctx context.Context, id string) error
	MoveToGarage(ctx context.Context, id string) error
	ReleaseFromShowroom(ctx context.Context, id string) error
	ReleaseFromGarage(ctx context.Context, id string) error
	AllCompanyVehicles(ctx context.Context) ([]*model.Vehicle, error)
}

type di struct {
	dbPool   *pgxpool.Pool
	migrator *migrator.Migrator

	repository vehicle.Repository

	showroom *facility.Facility
	garage   *facility.Facility

	financial FinancialService
	reporting ReportingService
	inventory InventoryService
}

func NewDI() *di { return &di{} }

func (d *di) DBPool(ctx context.Context) *pgxpool.Pool {
	if d.dbPool == nil {
		pool, err := pgxpool.New(ctx, config.C().Postgres.DSN())
		if err != nil {
			panic(fmt.Sprintf("failed to create pg pool: %v\n", err))
		}

		closer.AddNamed("PGX Pool",
			func(ctx context.Context) error {
				pool.Close()
				return nil
			})

		if err := pool.Ping(ctx); err != nil {
			panic(fmt.Sprintf("failed to ping db: %v\n", err))
		}

		d.dbPool = pool
	}

	return d.dbPool
}

func (d *di) Migrator(ctx context.Context) *migrator.Migrator {
	if d.migrator == nil {
		d.migrator = migrator.NewMigrator(
			stdlib.OpenDBFromPool(d.DBPool(ctx)),
			config.C().Postgres.MigrationDirectory(),
		)

		closer.AddNamed("Migrator",
			func(ctx context.Context) error {
				return d.migrator.Close()
			})
	}

	return d.migrator
}

func (d *di) VehicleRepository(ctx context.Context) vehicle.Repository {
	if d.repository == nil {
		switch config.C().Storage.Engine() {
		case envconfig.EnginePostgres:
			d.repository = pgrepo.NewRepository(d.DBPool(ctx))
		default:
			repo, err := csvrepo.Open(config.C().Storage.CSVPath())
			if err != nil {
				panic(fmt.Sprintf("failed to open csv repository: %v\n", err))
			}
			d.repository = repo
		}
	}

	return d.repository
}

func (d *di) Showroom(_ context.Context) *facility.Facility {
	if d.showroom == nil {
		d.showroom = facility.NewShowroom("main showroom", map[model.Category]int{
			model.CategoryCar:     10,
			model.CategoryBike:    5,
			model.CategoryScooter: 5,
		})
	}

	return d.showroom
}

func (d *di) Garage(_ context.Context) *facility.Facility {
	if d.garage == nil {
		d.garage = facility.NewGarage("main garage", nil)
	}

	return d.garage
}

func (d *di) FinancialService(ctx context.Context) FinancialService {
	if d.financial == nil {
		d.financial = finservice.NewFinancialService(d.VehicleRepository(ctx))
	}

	return d.financial
}

func (d *di) ReportingService(ctx context.Context) ReportingService {
	if d.reporting == nil {
		d.reporting = repservice.NewReportingService(d.FinancialService(ctx))
	}

	return d.reporting
}

func (d *di) InventoryService(ctx context.Context) InventoryService {
	if d.inventory == nil {
		d.inventory = invservice.NewInventoryService(
			d.VehicleRepository(ctx),
			d.Showroom(ctx),
			d.Garage(ctx),
		)
	}

	return d.inventory
}
