package app

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/orders/internal/health"
	"github.com/vladislavdragonenkov/orders/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
	"github.com/vladislavdragonenkov/orders/internal/storage/postgres"
)

// runtimeDependencies - хранилище и публикатор, выбранные по конфигурации.
type runtimeDependencies struct {
	repo      domain.OrderRepository
	publisher domain.EventPublisher

	storageChecker   healthcheck.Checker
	publisherChecker healthcheck.Checker

	closeFns []func() error
}

// closeFn закрывает ресурсы в обратном порядке открытия.
func (d *runtimeDependencies) closeFn() error {
	var errs []error
	for i := len(d.closeFns) - 1; i >= 0; i-- {
		if err := d.closeFns[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closeFns = nil
	return errors.Join(errs...)
}

func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &runtimeDependencies{}
	if err := initStorage(ctx, cfg, logger, deps); err != nil {
		_ = deps.closeFn()
		return nil, err
	}
	initPublisher(cfg, logger, deps)

	return deps, nil
}

func initStorage(ctx context.Context, cfg Config, logger *log.Entry, deps *runtimeDependencies) error {
	switch cfg.StorageDriver {
	case StorageDriverMemory:
		deps.repo = memory.NewOrderRepository()
		deps.storageChecker = healthcheck.NewSimpleChecker("storage", func(context.Context) error {
			return nil
		})
		logger.Info("using in-memory order store")
		return nil

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return errors.New("postgres dsn is required for postgres storage driver")
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("open postgres store: %w", err)
		}
		deps.closeFns = append(deps.closeFns, store.Close)

		if cfg.PostgresAutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				return fmt.Errorf("apply migrations: %w", err)
			}
			version, applied, err := store.MigrationStatus(ctx)
			if err != nil {
				return fmt.Errorf("migration status: %w", err)
			}
			logger.WithFields(log.Fields{
				"version": version,
				"applied": applied,
			}).Info("postgres migrations applied")
		}

		deps.repo = postgres.NewOrderRepository(store)
		deps.storageChecker = healthcheck.NewSimpleChecker("storage", store.Ping)
		logger.Info("using postgres order store")
		return nil

	default:
		return fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// initPublisher подключает Kafka, если заданы брокеры. При ошибке подключения
// сервис продолжает работу без публикации событий.
func initPublisher(cfg Config, logger *log.Entry, deps *runtimeDependencies) {
	producer, err := initKafkaProducer(cfg.KafkaBrokers, cfg.KafkaClientID, logger)
	if err != nil || producer == nil {
		deps.publisher = kafka.NewNoopPublisher(logger.WithField("publisher", "noop"))
		return
	}

	publisher := kafka.NewEventPublisher(producer)
	deps.publisher = publisher
	deps.publisherChecker = healthcheck.NewOptionalChecker("kafka", publisher.Check)
	deps.closeFns = append(deps.closeFns, func() error {
		closeKafka(producer, logger)
		return nil
	})
}
