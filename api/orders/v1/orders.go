// Package ordersv1 описывает сообщения и gRPC-контракт сервиса заказов.
//
// Сообщения - обычные Go-структуры, которые передаются JSON-кодеком (content-subtype "json").
package ordersv1

// OrderDetail - позиция заказа. Price - десятичная строка с двумя знаками после запятой.
type OrderDetail struct {
	ID        int64  `json:"id"`
	ProductID string `json:"product_id"`
	Price     string `json:"price"`
	Quantity  int32  `json:"quantity"`
}

// NewOrderDetail - позиция во входе CreateOrder.
type NewOrderDetail struct {
	ProductID string `json:"product_id"`
	Price     string `json:"price"`
	Quantity  int32  `json:"quantity"`
}

type Order struct {
	ID           int64          `json:"id"`
	OrderDetails []*OrderDetail `json:"order_details"`
}

type ListRequest struct {
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}

type ListResponse struct {
	Page       int32    `json:"page"`
	PageSize   int32    `json:"page_size"`
	TotalItems int64    `json:"total_items"`
	TotalPages int64    `json:"total_pages"`
	Items      []*Order `json:"items"`
}

type GetOrderRequest struct {
	OrderID int64 `json:"order_id"`
}

type GetOrderResponse struct {
	Order *Order `json:"order"`
}

type CreateOrderRequest struct {
	OrderDetails []*NewOrderDetail `json:"order_details"`
}

type CreateOrderResponse struct {
	Order *Order `json:"order"`
}

type UpdateOrderRequest struct {
	Order *Order `json:"order"`
}

type UpdateOrderResponse struct {
	Order *Order `json:"order"`
}

type DeleteOrderRequest struct {
	OrderID int64 `json:"order_id"`
}

type DeleteOrderResponse struct{}

type GetOrderByProductIDRequest struct {
	ProductID string `json:"product_id"`
}

// GetOrderByProductIDResponse - Found=false без OrderDetail, если совпадений нет.
type GetOrderByProductIDResponse struct {
	Found       bool         `json:"found"`
	OrderID     int64        `json:"order_id,omitempty"`
	OrderDetail *OrderDetail `json:"order_detail,omitempty"`
}

func (x *GetOrderResponse) GetOrder() *Order {
	if x != nil {
		return x.Order
	}
	return nil
}

func (x *CreateOrderResponse) GetOrder() *Order {
	if x != nil {
		return x.Order
	}
	return nil
}

func (x *UpdateOrderRequest) GetOrder() *Order {
	if x != nil {
		return x.Order
	}
	return nil
}

func (x *UpdateOrderResponse) GetOrder() *Order {
	if x != nil {
		return x.Order
	}
	return nil
}

func (x *Order) GetOrderDetails() []*OrderDetail {
	if x != nil {
		return x.OrderDetails
	}
	return nil
}
