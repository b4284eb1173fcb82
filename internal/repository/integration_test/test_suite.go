package integration_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/pkg/config"
	"fulfillment/internal/pkg/postgres"
	"fulfillment/pkg/logger/zap_adapter"
	"fulfillment/pkg/querier"
	"fulfillment/pkg/tx"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var (
	poolInstance *pgxpool.Pool
	poolOnce     sync.Once
)

func getPool() *pgxpool.Pool {
	poolOnce.Do(func() {
		// переменные POSTGRES_* задаёт окружение запуска go test -tags integration
		cfg := &config.Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		}

		ctx := context.Background()

		zapLogger, err := zap_adapter.NewZapAdapter("")
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() {
			if err := zapLogger.Sync(); err != nil {
				log.Printf("failed to sync logger: %v", err)
			}
		}()

		// Open заодно накатывает миграции
		pool, err := postgres.Open(ctx, zapLogger, cfg)
		if err != nil {
			panic(err)
		}

		poolInstance = pool
	})

	return poolInstance
}

func GetQuerier() *querier.Querier {
	return querier.New(getPool(), pgxv5.DefaultCtxGetter)
}

func GetTxManager() *tx.Manager {
	return tx.New(getPool())
}

func SetupDB(t *testing.T, setupSql string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE executions;
	`)
	require.NoError(t, err)
}
