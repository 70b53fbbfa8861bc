package domain

import "context"

// OrderRepository описывает требования к хранилищу заказов.
// Каждый вызов атомарен: либо применяется целиком, либо не применяется вовсе.
type OrderRepository interface {
	// Count возвращает общее количество заказов.
	Count(ctx context.Context) (int, error)
	// ListPage возвращает не более limit заказов начиная с offset, по возрастанию ID.
	// Выход за пределы данных не является ошибкой.
	ListPage(ctx context.Context, limit, offset int) ([]Order, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(ctx context.Context, id int64) (Order, error)
	// Create сохраняет заказ с позициями, назначая идентификаторы.
	Create(ctx context.Context, details []DetailInput) (Order, error)
	// Update применяет правки позиций по правилам ApplyEdits.
	Update(ctx context.Context, id int64, edits map[int64]DetailEdit) (Order, error)
	// Delete удаляет заказ вместе с позициями или возвращает ErrOrderNotFound.
	Delete(ctx context.Context, id int64) error
	// FindFirstByProductID возвращает первую по ID позицию с товаром или ErrOrderDetailNotFound.
	FindFirstByProductID(ctx context.Context, productID string) (OrderDetail, error)
}
