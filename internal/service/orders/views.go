package orders

import (
	"fmt"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// OrderDetailView - сериализованная позиция заказа. Цена всегда строка с двумя знаками.
type OrderDetailView struct {
	ID        int64  `json:"id"`
	ProductID string `json:"product_id"`
	Price     string `json:"price"`
	Quantity  int32  `json:"quantity"`
}

// NewOrderDetailView - позиция во входе create_order.
type NewOrderDetailView struct {
	ProductID string `json:"product_id"`
	Price     string `json:"price"`
	Quantity  int32  `json:"quantity"`
}

// OrderView - сериализованный заказ.
type OrderView struct {
	ID           int64             `json:"id"`
	OrderDetails []OrderDetailView `json:"order_details"`
}

// ProductDetailView - найденная по product_id позиция вместе с заказом-владельцем.
type ProductDetailView struct {
	OrderID int64 `json:"order_id"`
	OrderDetailView
}

// ListPage - страница списка заказов.
type ListPage struct {
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalItems int         `json:"total_items"`
	TotalPages int         `json:"total_pages"`
	Items      []OrderView `json:"items"`
}

// OrderCreatedEvent - полезная нагрузка события order_created.
type OrderCreatedEvent struct {
	Order OrderView `json:"order"`
}

func toDetailView(detail domain.OrderDetail) OrderDetailView {
	return OrderDetailView{
		ID:        detail.ID,
		ProductID: detail.ProductID,
		Price:     domain.FormatPrice(detail.Price),
		Quantity:  detail.Quantity,
	}
}

// ToOrderView сериализует доменный заказ.
func ToOrderView(order domain.Order) OrderView {
	details := make([]OrderDetailView, 0, len(order.Details))
	for _, detail := range order.Details {
		details = append(details, toDetailView(detail))
	}
	return OrderView{
		ID:           order.ID,
		OrderDetails: details,
	}
}

// editsFromView строит карту правок из входного представления заказа.
// Цены разбираются точно; дубли ID позиций считаются некорректным входом.
func editsFromView(view OrderView) (map[int64]domain.DetailEdit, error) {
	edits := make(map[int64]domain.DetailEdit, len(view.OrderDetails))
	for idx, detail := range view.OrderDetails {
		if _, dup := edits[detail.ID]; dup {
			return nil, fmt.Errorf("%w: order_details[%d]: duplicate id %d", domain.ErrValidation, idx, detail.ID)
		}
		price, err := domain.ParsePrice(detail.Price)
		if err != nil {
			return nil, fmt.Errorf("order_details[%d]: %w", idx, err)
		}
		edits[detail.ID] = domain.DetailEdit{
			Price:    price,
			Quantity: detail.Quantity,
		}
	}
	return edits, nil
}

// inputsFromViews разбирает позиции create_order. Инварианты проверяет domain.ValidateDetails.
func inputsFromViews(views []NewOrderDetailView) ([]domain.DetailInput, error) {
	inputs := make([]domain.DetailInput, 0, len(views))
	for idx, view := range views {
		price, err := domain.ParsePrice(view.Price)
		if err != nil {
			return nil, fmt.Errorf("order_details[%d]: %w", idx, err)
		}
		inputs = append(inputs, domain.DetailInput{
			ProductID: view.ProductID,
			Price:     price,
			Quantity:  view.Quantity,
		})
	}
	return inputs, nil
}
