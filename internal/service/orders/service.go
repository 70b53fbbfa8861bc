package orders

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
)

const (
	tracerName = "github.com/vladislavdragonenkov/orders/internal/service/orders"

	defaultPublishTimeout = 10 * time.Second

	opList                = "list"
	opGetOrder            = "get_order"
	opCreateOrder         = "create_order"
	opUpdateOrder         = "update_order"
	opDeleteOrder         = "delete_order"
	opGetOrderByProductID = "get_order_by_product_id"
)

// Service - транспортно-независимый сервис заказов. Возвращает сериализованные представления.
type Service struct {
	repo      domain.OrderRepository
	publisher domain.EventPublisher
	metrics   *metrics.OrderMetrics
	logger    *log.Entry
	tracer    trace.Tracer

	publishTimeout time.Duration

	publishMu     sync.Mutex
	publishClosed bool
	publishWG     sync.WaitGroup
}

// NewService конструирует сервис. metrics может быть nil.
func NewService(
	repo domain.OrderRepository,
	publisher domain.EventPublisher,
	orderMetrics *metrics.OrderMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "orders-service")
	}
	return &Service{
		repo:           repo,
		publisher:      publisher,
		metrics:        orderMetrics,
		logger:         logger,
		tracer:         otel.Tracer(tracerName),
		publishTimeout: defaultPublishTimeout,
	}
}

// List возвращает страницу заказов с накопительным окном выборки.
func (s *Service) List(ctx context.Context, page, pageSize int) (result ListPage, err error) {
	ctx, finish := s.start(ctx, opList,
		attribute.Int("orders.page", page),
		attribute.Int("orders.page_size", pageSize),
	)
	defer func() { finish(err) }()

	p := domain.Page{Number: page, Size: pageSize}
	if err := p.Validate(); err != nil {
		return ListPage{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return ListPage{}, err
	}

	limit, offset := p.Window()
	found, err := s.repo.ListPage(ctx, limit, offset)
	if err != nil {
		return ListPage{}, err
	}

	items := make([]OrderView, 0, len(found))
	for _, order := range found {
		items = append(items, ToOrderView(order))
	}

	return ListPage{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: domain.TotalPages(total, pageSize),
		Items:      items,
	}, nil
}

// GetOrder возвращает заказ по ID или NotFound.
func (s *Service) GetOrder(ctx context.Context, id int64) (view OrderView, err error) {
	ctx, finish := s.start(ctx, opGetOrder, attribute.Int64("order.id", id))
	defer func() { finish(err) }()

	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return OrderView{}, err
	}
	return ToOrderView(order), nil
}

// CreateOrder валидирует позиции, сохраняет заказ и после коммита публикует order_created.
func (s *Service) CreateOrder(ctx context.Context, details []NewOrderDetailView) (view OrderView, err error) {
	ctx, finish := s.start(ctx, opCreateOrder, attribute.Int("order.details", len(details)))
	defer func() { finish(err) }()

	inputs, err := inputsFromViews(details)
	if err != nil {
		return OrderView{}, err
	}
	if err := domain.ValidateDetails(inputs); err != nil {
		return OrderView{}, err
	}

	order, err := s.repo.Create(ctx, inputs)
	if err != nil {
		return OrderView{}, err
	}

	view = ToOrderView(order)
	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}
	s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"details":  len(order.Details),
	}).Info("order created")

	s.publishOrderCreated(ctx, view)

	return view, nil
}

// UpdateOrder применяет цены и количества из view к позициям заказа view.ID.
func (s *Service) UpdateOrder(ctx context.Context, view OrderView) (updated OrderView, err error) {
	ctx, finish := s.start(ctx, opUpdateOrder, attribute.Int64("order.id", view.ID))
	defer func() { finish(err) }()

	edits, err := editsFromView(view)
	if err != nil {
		return OrderView{}, err
	}

	order, err := s.repo.Update(ctx, view.ID, edits)
	if err != nil {
		return OrderView{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderUpdated()
	}
	return ToOrderView(order), nil
}

// DeleteOrder удаляет заказ вместе с позициями.
func (s *Service) DeleteOrder(ctx context.Context, id int64) (err error) {
	ctx, finish := s.start(ctx, opDeleteOrder, attribute.Int64("order.id", id))
	defer func() { finish(err) }()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderDeleted()
	}
	s.logger.WithField("order_id", id).Info("order deleted")
	return nil
}

// GetOrderByProductID возвращает первую позицию с данным product_id.
// Отсутствие совпадений - штатный исход: (nil, nil).
func (s *Service) GetOrderByProductID(ctx context.Context, productID string) (match *ProductDetailView, err error) {
	ctx, finish := s.start(ctx, opGetOrderByProductID, attribute.String("product.id", productID))
	defer func() { finish(err) }()

	detail, err := s.repo.FindFirstByProductID(ctx, productID)
	if errors.Is(err, domain.ErrOrderDetailNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &ProductDetailView{
		OrderID:         detail.OrderID,
		OrderDetailView: toDetailView(detail),
	}, nil
}

// Shutdown ожидает завершения фоновых публикаций событий.
func (s *Service) Shutdown(ctx context.Context) error {
	s.publishMu.Lock()
	s.publishClosed = true
	s.publishMu.Unlock()

	waitDone := make(chan struct{})
	go func() {
		s.publishWG.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// publishOrderCreated отправляет событие в фоне. Ошибка только логируется и учитывается в метриках.
func (s *Service) publishOrderCreated(ctx context.Context, view OrderView) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(OrderCreatedEvent{Order: view})
	if err != nil {
		s.logger.WithError(err).WithField("order_id", view.ID).Error("failed to marshal order_created payload")
		return
	}

	key := strconv.FormatInt(view.ID, 10)
	// Публикация переживает отмену запроса, но сохраняет trace-контекст.
	publishCtx := context.WithoutCancel(ctx)

	s.runPublishAsync(view.ID, func() {
		ctx, cancel := context.WithTimeout(publishCtx, s.publishTimeout)
		defer cancel()

		ctx, span := s.tracer.Start(ctx, "orders.publish_order_created",
			trace.WithAttributes(attribute.Int64("order.id", view.ID)),
		)
		defer span.End()

		started := time.Now()
		if s.metrics != nil {
			s.metrics.RecordPublicationStarted()
		}
		err := s.publisher.Publish(ctx, domain.EventOrderCreated, key, payload)
		if s.metrics != nil {
			s.metrics.RecordPublication(domain.EventOrderCreated, err, time.Since(started))
		}

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "publish failed")
			s.logger.WithError(err).WithFields(log.Fields{
				"order_id": view.ID,
				"event":    domain.EventOrderCreated,
			}).Warn("failed to publish event")
			return
		}
		s.logger.WithFields(log.Fields{
			"order_id": view.ID,
			"event":    domain.EventOrderCreated,
		}).Debug("event published")
	})
}

func (s *Service) runPublishAsync(orderID int64, fn func()) {
	s.publishMu.Lock()
	if s.publishClosed {
		s.publishMu.Unlock()
		s.logger.WithField("order_id", orderID).Warn("event publication skipped during shutdown")
		return
	}
	s.publishWG.Add(1)
	s.publishMu.Unlock()

	go func() {
		defer s.publishWG.Done()
		fn()
	}()
}

// start открывает span операции и возвращает функцию завершения, которая фиксирует
// длительность, класс ошибки и статус span.
func (s *Service) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "orders."+op, trace.WithAttributes(attrs...))
	started := time.Now()

	return ctx, func(err error) {
		defer span.End()

		if s.metrics != nil {
			s.metrics.RecordOperation(op, time.Since(started))
		}
		if err == nil {
			return
		}

		kind := ErrorKind(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
		if s.metrics != nil {
			s.metrics.RecordOperationError(op, kind)
		}

		entry := s.logger.WithError(err).WithFields(log.Fields{
			"operation": op,
			"kind":      kind,
		})
		if kind == KindStore {
			entry.Error("order operation failed")
			return
		}
		entry.Debug("order operation rejected")
	}
}

// Классы ошибок сервиса.
const (
	KindNotFound    = "not_found"
	KindValidation  = "validation"
	KindKeyNotFound = "key_not_found"
	KindStore       = "store"
)

// ErrorKind классифицирует ошибку сервиса; всё, что не распознано, считается сбоем хранилища.
func ErrorKind(err error) string {
	switch {
	case domain.IsNotFound(err):
		return KindNotFound
	case domain.IsValidation(err):
		return KindValidation
	case domain.IsKeyNotFound(err):
		return KindKeyNotFound
	default:
		return KindStore
	}
}
