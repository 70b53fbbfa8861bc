package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/orders/internal/health"
	"github.com/vladislavdragonenkov/orders/internal/messaging/kafka"
)

// newTestDetails возвращает позиции для проверки работоспособности хранилища.
func newTestDetails() []domain.DetailInput {
	return []domain.DetailInput{
		{ProductID: "the_odyssey", Price: decimal.RequireFromString("99.99"), Quantity: 1},
	}
}

func TestInitRuntimeDependencies_Memory(t *testing.T) {
	t.Parallel()

	deps, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverMemory,
	}, log.WithField("test", "memory-storage"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.closeFn() })

	require.NotNil(t, deps.repo)
	require.NotNil(t, deps.publisher)
	require.IsType(t, &kafka.NoopPublisher{}, deps.publisher)
	require.Nil(t, deps.publisherChecker)

	require.NotNil(t, deps.storageChecker)
	require.Equal(t, healthcheck.StatusHealthy, deps.storageChecker.Check(context.Background()).Status)

	order, err := deps.repo.Create(context.Background(), newTestDetails())
	require.NoError(t, err)
	require.Equal(t, int64(1), order.ID)
}

func TestInitRuntimeDependencies_NilLogger(t *testing.T) {
	t.Parallel()

	deps, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverMemory,
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, deps.repo)
}

func TestInitRuntimeDependencies_IndependentInstances(t *testing.T) {
	t.Parallel()

	cfg := Config{StorageDriver: StorageDriverMemory}
	deps1, err := initRuntimeDependencies(context.Background(), cfg, nil)
	require.NoError(t, err)
	deps2, err := initRuntimeDependencies(context.Background(), cfg, nil)
	require.NoError(t, err)

	_, err = deps1.repo.Create(context.Background(), newTestDetails())
	require.NoError(t, err)

	count, err := deps2.repo.Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, count, "memory stores must not share state")
}

func TestInitRuntimeDependencies_PostgresRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverPostgres,
	}, log.WithField("test", "postgres-missing-dsn"))
	require.ErrorContains(t, err, "postgres dsn is required")
}

func TestInitRuntimeDependencies_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: "sqlite",
	}, log.WithField("test", "unsupported-driver"))
	require.ErrorContains(t, err, "unsupported storage driver")
}

func TestInitRuntimeDependencies_UnreachableKafkaFallsBackToNoop(t *testing.T) {
	t.Parallel()

	deps, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverMemory,
		KafkaBrokers:  []string{"127.0.0.1:1"},
		KafkaClientID: "orders-test",
	}, log.WithField("test", "kafka-fallback"))
	require.NoError(t, err)

	require.IsType(t, &kafka.NoopPublisher{}, deps.publisher)
	require.Nil(t, deps.publisherChecker)
}

func TestRuntimeDependencies_CloseInReverseOrder(t *testing.T) {
	var order []int
	deps := &runtimeDependencies{
		closeFns: []func() error{
			func() error { order = append(order, 1); return nil },
			func() error { order = append(order, 2); return context.Canceled },
		},
	}

	err := deps.closeFn()
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, []int{2, 1}, order)

	require.NoError(t, deps.closeFn(), "second close must be a no-op")
}
