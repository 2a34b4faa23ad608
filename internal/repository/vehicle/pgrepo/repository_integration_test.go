//go:build integration

package pgrepo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/you-humble/dealership/internal/importer"
	"github.com/you-humble/dealership/internal/logger"
	"github.com/you-humble/dealership/internal/migrator"
	"github.com/you-humble/dealership/internal/model"
	"github.com/you-humble/dealership/internal/repository/vehicle"
	"github.com/you-humble/dealership/internal/repository/vehicle/repotest"
)

const (
	pgImage       = "postgres:17.0-alpine3.20"
	pgUser        = "dealership-user"
	pgPass        = "dealership-password"
	pgDB          = "dealership-db"
	migrationsDir = "../../../../migrations"
)

var pool *pgxpool.Pool

func TestMain(m *testing.M) {
	logger.SetNopLogger()

	ctx := context.Background()

	pgC, err := postgres.Run(ctx,
		pgImage,
		postgres.WithDatabase(pgDB),
		postgres.WithUsername(pgUser),
		postgres.WithPassword(pgPass),
		tc.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp").WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		panic(err)
	}

	dbURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}

	pool, err = pgxpool.New(ctx, dbURL)
	if err != nil {
		panic(err)
	}

	mg := migrator.NewMigrator(stdlib.OpenDBFromPool(pool), migrationsDir)
	if err := mg.Up(); err != nil {
		panic(err)
	}
	_ = mg.Close()

	code := m.Run()

	pool.Close()
	_ = pgC.Terminate(ctx)
	os.Exit(code)
}

func cleanTable(t *testing.T) {
	t.Helper()
	_, err := pool.Exec(context.Background(), "TRUNCATE TABLE vehicles")
	require.NoError(t, err)
}

func TestRepositoryContract(t *testing.T) {
	repotest.Run(t, func(t *testing.T) vehicle.Repository {
		cleanTable(t)
		return NewRepository(pool)
	})
}

func TestCount(t *testing.T) {
	cleanTable(t)
	ctx := context.Background()
	repo := NewRepository(pool)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	v, err := model.NewCar(model.CarParams{
		Brand: "Renault", Model: "Clio", Year: 2018, Price: 7500,
		Mileage: 42000, FuelType: "LPG", Transmission: "Manual", OwnerType: "First",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, v))

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestImportBatch(t *testing.T) {
	cleanTable(t)
	ctx := context.Background()
	repo := NewRepository(pool)

	raw := []importer.RawRow{
		{"name": "Maruti Swift Dzire VDI", "year": "2014", "selling_price": "450000", "km_driven": "145500", "fuel": "Diesel", "transmission": "Manual", "owner": "First Owner"},
		{"name": "Datsun RediGO T Option", "year": "2017", "selling_price": "250000", "km_driven": "46000", "fuel": "CNG", "transmission": "Manual", "owner": "First Owner"},
	}

	vehicles := make([]*model.Vehicle, 0, len(raw))
	for _, row := range raw {
		v, err := importer.ParseCar(row)
		require.NoError(t, err)
		vehicles = append(vehicles, v)
	}

	require.NoError(t, repo.ImportBatch(ctx, vehicles))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	eco, err := repo.Search(ctx, model.SearchCriteria{"ecological_bonus_eligible": true})
	require.NoError(t, err)
	require.Len(t, eco, 1)
	assert.Equal(t, "Datsun", eco[0].Brand)
}
