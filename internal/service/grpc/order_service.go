package grpcsvc

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	ordersv1 "github.com/vladislavdragonenkov/orders/api/orders/v1"
	"github.com/vladislavdragonenkov/orders/internal/service/orders"
)

// OrderService реализует gRPC API поверх сервиса заказов.
type OrderService struct {
	ordersv1.UnimplementedOrdersServiceServer

	orders *orders.Service
	logger *log.Entry
}

// NewOrderService конструирует gRPC-адаптер.
func NewOrderService(svc *orders.Service, logger *log.Entry) *OrderService {
	if logger == nil {
		logger = log.New().WithField("component", "grpc-order-service")
	}
	return &OrderService{
		orders: svc,
		logger: logger,
	}
}

// List возвращает страницу заказов.
func (s *OrderService) List(ctx context.Context, req *ordersv1.ListRequest) (*ordersv1.ListResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	page, err := s.orders.List(ctx, int(req.Page), int(req.PageSize))
	if err != nil {
		return nil, toStatus(err)
	}

	items := make([]*ordersv1.Order, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, toProtoOrder(item))
	}
	return &ordersv1.ListResponse{
		Page:       int32(page.Page),
		PageSize:   int32(page.PageSize),
		TotalItems: int64(page.TotalItems),
		TotalPages: int64(page.TotalPages),
		Items:      items,
	}, nil
}

// GetOrder возвращает заказ по ID.
func (s *OrderService) GetOrder(ctx context.Context, req *ordersv1.GetOrderRequest) (*ordersv1.GetOrderResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	view, err := s.orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ordersv1.GetOrderResponse{Order: toProtoOrder(view)}, nil
}

// CreateOrder создаёт заказ; событие order_created публикуется сервисом после коммита.
func (s *OrderService) CreateOrder(ctx context.Context, req *ordersv1.CreateOrderRequest) (*ordersv1.CreateOrderResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	details := make([]orders.NewOrderDetailView, 0, len(req.OrderDetails))
	for idx, detail := range req.OrderDetails {
		if detail == nil {
			return nil, status.Errorf(codes.InvalidArgument, "order_details[%d] is nil", idx)
		}
		details = append(details, orders.NewOrderDetailView{
			ProductID: detail.ProductID,
			Price:     detail.Price,
			Quantity:  detail.Quantity,
		})
	}

	view, err := s.orders.CreateOrder(ctx, details)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ordersv1.CreateOrderResponse{Order: toProtoOrder(view)}, nil
}

// UpdateOrder меняет цены и количества позиций заказа.
func (s *OrderService) UpdateOrder(ctx context.Context, req *ordersv1.UpdateOrderRequest) (*ordersv1.UpdateOrderResponse, error) {
	order := req.GetOrder()
	if order == nil {
		return nil, status.Error(codes.InvalidArgument, "order is required")
	}

	input := orders.OrderView{
		ID:           order.ID,
		OrderDetails: make([]orders.OrderDetailView, 0, len(order.OrderDetails)),
	}
	for idx, detail := range order.OrderDetails {
		if detail == nil {
			return nil, status.Errorf(codes.InvalidArgument, "order_details[%d] is nil", idx)
		}
		input.OrderDetails = append(input.OrderDetails, orders.OrderDetailView{
			ID:        detail.ID,
			ProductID: detail.ProductID,
			Price:     detail.Price,
			Quantity:  detail.Quantity,
		})
	}

	view, err := s.orders.UpdateOrder(ctx, input)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ordersv1.UpdateOrderResponse{Order: toProtoOrder(view)}, nil
}

// DeleteOrder удаляет заказ.
func (s *OrderService) DeleteOrder(ctx context.Context, req *ordersv1.DeleteOrderRequest) (*ordersv1.DeleteOrderResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if err := s.orders.DeleteOrder(ctx, req.OrderID); err != nil {
		return nil, toStatus(err)
	}
	return &ordersv1.DeleteOrderResponse{}, nil
}

// GetOrderByProductID ищет первую позицию с данным product_id. Отсутствие - Found=false, не ошибка.
func (s *OrderService) GetOrderByProductID(ctx context.Context, req *ordersv1.GetOrderByProductIDRequest) (*ordersv1.GetOrderByProductIDResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	match, err := s.orders.GetOrderByProductID(ctx, req.ProductID)
	if err != nil {
		return nil, toStatus(err)
	}
	if match == nil {
		return &ordersv1.GetOrderByProductIDResponse{Found: false}, nil
	}
	return &ordersv1.GetOrderByProductIDResponse{
		Found:       true,
		OrderID:     match.OrderID,
		OrderDetail: toProtoDetail(match.OrderDetailView),
	}, nil
}

// toStatus переводит ошибку сервиса в gRPC status. Сообщение ошибки не маскируется.
func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch orders.ErrorKind(err) {
	case orders.KindNotFound:
		return status.Error(codes.NotFound, err.Error())
	case orders.KindValidation:
		return status.Error(codes.InvalidArgument, err.Error())
	case orders.KindKeyNotFound:
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func toProtoOrder(view orders.OrderView) *ordersv1.Order {
	details := make([]*ordersv1.OrderDetail, 0, len(view.OrderDetails))
	for _, detail := range view.OrderDetails {
		details = append(details, toProtoDetail(detail))
	}
	return &ordersv1.Order{
		ID:           view.ID,
		OrderDetails: details,
	}
}

func toProtoDetail(view orders.OrderDetailView) *ordersv1.OrderDetail {
	return &ordersv1.OrderDetail{
		ID:        view.ID,
		ProductID: view.ProductID,
		Price:     view.Price,
		Quantity:  view.Quantity,
	}
}
