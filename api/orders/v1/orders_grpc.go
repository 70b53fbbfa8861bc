package ordersv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName - полное имя gRPC-сервиса.
const ServiceName = "orders.v1.OrdersService"

const (
	OrdersService_List_FullMethodName                = "/orders.v1.OrdersService/List"
	OrdersService_GetOrder_FullMethodName            = "/orders.v1.OrdersService/GetOrder"
	OrdersService_CreateOrder_FullMethodName         = "/orders.v1.OrdersService/CreateOrder"
	OrdersService_UpdateOrder_FullMethodName         = "/orders.v1.OrdersService/UpdateOrder"
	OrdersService_DeleteOrder_FullMethodName         = "/orders.v1.OrdersService/DeleteOrder"
	OrdersService_GetOrderByProductId_FullMethodName = "/orders.v1.OrdersService/GetOrderByProductId"
)

// OrdersServiceClient - клиентский API сервиса заказов.
type OrdersServiceClient interface {
	List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error)
	GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*GetOrderResponse, error)
	CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*CreateOrderResponse, error)
	UpdateOrder(ctx context.Context, in *UpdateOrderRequest, opts ...grpc.CallOption) (*UpdateOrderResponse, error)
	DeleteOrder(ctx context.Context, in *DeleteOrderRequest, opts ...grpc.CallOption) (*DeleteOrderResponse, error)
	GetOrderByProductID(ctx context.Context, in *GetOrderByProductIDRequest, opts ...grpc.CallOption) (*GetOrderByProductIDResponse, error)
}

type ordersServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewOrdersServiceClient создаёт клиента; все вызовы идут через JSON-кодек.
func NewOrdersServiceClient(cc grpc.ClientConnInterface) OrdersServiceClient {
	return &ordersServiceClient{cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ordersServiceClient) List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error) {
	return invoke[ListRequest, ListResponse](ctx, c.cc, OrdersService_List_FullMethodName, in, opts)
}

func (c *ordersServiceClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*GetOrderResponse, error) {
	return invoke[GetOrderRequest, GetOrderResponse](ctx, c.cc, OrdersService_GetOrder_FullMethodName, in, opts)
}

func (c *ordersServiceClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*CreateOrderResponse, error) {
	return invoke[CreateOrderRequest, CreateOrderResponse](ctx, c.cc, OrdersService_CreateOrder_FullMethodName, in, opts)
}

func (c *ordersServiceClient) UpdateOrder(ctx context.Context, in *UpdateOrderRequest, opts ...grpc.CallOption) (*UpdateOrderResponse, error) {
	return invoke[UpdateOrderRequest, UpdateOrderResponse](ctx, c.cc, OrdersService_UpdateOrder_FullMethodName, in, opts)
}

func (c *ordersServiceClient) DeleteOrder(ctx context.Context, in *DeleteOrderRequest, opts ...grpc.CallOption) (*DeleteOrderResponse, error) {
	return invoke[DeleteOrderRequest, DeleteOrderResponse](ctx, c.cc, OrdersService_DeleteOrder_FullMethodName, in, opts)
}

func (c *ordersServiceClient) GetOrderByProductID(ctx context.Context, in *GetOrderByProductIDRequest, opts ...grpc.CallOption) (*GetOrderByProductIDResponse, error) {
	return invoke[GetOrderByProductIDRequest, GetOrderByProductIDResponse](ctx, c.cc, OrdersService_GetOrderByProductId_FullMethodName, in, opts)
}

// OrdersServiceServer - серверная часть сервиса заказов.
// Реализации должны встраивать UnimplementedOrdersServiceServer.
type OrdersServiceServer interface {
	List(context.Context, *ListRequest) (*ListResponse, error)
	GetOrder(context.Context, *GetOrderRequest) (*GetOrderResponse, error)
	CreateOrder(context.Context, *CreateOrderRequest) (*CreateOrderResponse, error)
	UpdateOrder(context.Context, *UpdateOrderRequest) (*UpdateOrderResponse, error)
	DeleteOrder(context.Context, *DeleteOrderRequest) (*DeleteOrderResponse, error)
	GetOrderByProductID(context.Context, *GetOrderByProductIDRequest) (*GetOrderByProductIDResponse, error)
	mustEmbedUnimplementedOrdersServiceServer()
}

// UnimplementedOrdersServiceServer отвечает Unimplemented на все методы.
type UnimplementedOrdersServiceServer struct{}

func (UnimplementedOrdersServiceServer) List(context.Context, *ListRequest) (*ListResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method List not implemented")
}
func (UnimplementedOrdersServiceServer) GetOrder(context.Context, *GetOrderRequest) (*GetOrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOrder not implemented")
}
func (UnimplementedOrdersServiceServer) CreateOrder(context.Context, *CreateOrderRequest) (*CreateOrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateOrder not implemented")
}
func (UnimplementedOrdersServiceServer) UpdateOrder(context.Context, *UpdateOrderRequest) (*UpdateOrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateOrder not implemented")
}
func (UnimplementedOrdersServiceServer) DeleteOrder(context.Context, *DeleteOrderRequest) (*DeleteOrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteOrder not implemented")
}
func (UnimplementedOrdersServiceServer) GetOrderByProductID(context.Context, *GetOrderByProductIDRequest) (*GetOrderByProductIDResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOrderByProductId not implemented")
}
func (UnimplementedOrdersServiceServer) mustEmbedUnimplementedOrdersServiceServer() {}

// RegisterOrdersServiceServer регистрирует реализацию на gRPC-сервере.
func RegisterOrdersServiceServer(s grpc.ServiceRegistrar, srv OrdersServiceServer) {
	s.RegisterService(&OrdersService_ServiceDesc, srv)
}

// unaryHandler строит grpc.MethodHandler для метода с запросом Req.
func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(OrdersServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(OrdersServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(OrdersServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var (
	_OrdersService_List_Handler = unaryHandler(OrdersService_List_FullMethodName,
		OrdersServiceServer.List)
	_OrdersService_GetOrder_Handler = unaryHandler(OrdersService_GetOrder_FullMethodName,
		OrdersServiceServer.GetOrder)
	_OrdersService_CreateOrder_Handler = unaryHandler(OrdersService_CreateOrder_FullMethodName,
		OrdersServiceServer.CreateOrder)
	_OrdersService_UpdateOrder_Handler = unaryHandler(OrdersService_UpdateOrder_FullMethodName,
		OrdersServiceServer.UpdateOrder)
	_OrdersService_DeleteOrder_Handler = unaryHandler(OrdersService_DeleteOrder_FullMethodName,
		OrdersServiceServer.DeleteOrder)
	_OrdersService_GetOrderByProductId_Handler = unaryHandler(OrdersService_GetOrderByProductId_FullMethodName,
		OrdersServiceServer.GetOrderByProductID)
)

// OrdersService_ServiceDesc - описание сервиса для grpc.RegisterService.
var OrdersService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrdersServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "List", Handler: _OrdersService_List_Handler},
		{MethodName: "GetOrder", Handler: _OrdersService_GetOrder_Handler},
		{MethodName: "CreateOrder", Handler: _OrdersService_CreateOrder_Handler},
		{MethodName: "UpdateOrder", Handler: _OrdersService_UpdateOrder_Handler},
		{MethodName: "DeleteOrder", Handler: _OrdersService_DeleteOrder_Handler},
		{MethodName: "GetOrderByProductId", Handler: _OrdersService_GetOrderByProductId_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "orders/v1/orders",
}
