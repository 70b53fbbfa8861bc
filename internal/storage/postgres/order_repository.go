package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

// queryer - общий интерфейс *sql.DB и *sql.Tx для чтения.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type orderRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{
		db: store.DB(),
		// PostgreSQL хранит микросекунды; округляем заранее, чтобы возвращаемые значения совпадали с сохранёнными.
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (r *orderRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, storeError("count orders", err)
	}
	return count, nil
}

func (r *orderRepository) ListPage(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	orders := make([]domain.Order, 0)
	if limit <= 0 {
		return orders, nil
	}
	if offset < 0 {
		offset = 0
	}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT id, created_at, updated_at
			FROM orders
			ORDER BY id ASC
			LIMIT $1 OFFSET $2
		`, limit, offset)
		if err != nil {
			return storeError("list orders", err)
		}
		defer rows.Close()

		for rows.Next() {
			var order domain.Order
			if err := rows.Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
				return storeError("scan order row", err)
			}
			orders = append(orders, order)
		}
		if err := rows.Err(); err != nil {
			return storeError("iterate order rows", err)
		}
		if len(orders) == 0 {
			return nil
		}

		ids := make([]int64, 0, len(orders))
		for _, order := range orders {
			ids = append(ids, order.ID)
		}
		details, err := loadDetails(ctx, tx, `WHERE order_id = ANY($1) ORDER BY id ASC`, ids)
		if err != nil {
			return err
		}

		byOrder := make(map[int64][]domain.OrderDetail, len(orders))
		for _, detail := range details {
			byOrder[detail.OrderID] = append(byOrder[detail.OrderID], detail)
		}
		for i := range orders {
			orders[i].Details = byOrder[orders[i].ID]
			if orders[i].Details == nil {
				orders[i].Details = []domain.OrderDetail{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		order, err = getOrder(ctx, tx, id, false)
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (r *orderRepository) Create(ctx context.Context, details []domain.DetailInput) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	now := r.now()
	order := domain.Order{
		Details:   make([]domain.OrderDetail, 0, len(details)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO orders (created_at, updated_at) VALUES ($1, $1)
			RETURNING id
		`, now).Scan(&order.ID); err != nil {
			return storeError("insert order", err)
		}

		// Позиции вставляются по одной в порядке входа, поэтому их ID возрастают так же.
		for _, in := range details {
			detail := domain.OrderDetail{
				OrderID:   order.ID,
				ProductID: in.ProductID,
				Price:     domain.NormalizePrice(in.Price),
				Quantity:  in.Quantity,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO order_details (
					order_id, product_id, price, quantity, created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $5)
				RETURNING id
			`,
				detail.OrderID, detail.ProductID, detail.Price, detail.Quantity, now,
			).Scan(&detail.ID); err != nil {
				return storeError("insert order detail", err)
			}
			order.Details = append(order.Details, detail)
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

// Update блокирует строку заказа (SELECT ... FOR UPDATE), поэтому конкурентные правки
// одного заказа сериализуются и не теряются.
func (r *orderRepository) Update(ctx context.Context, id int64, edits map[int64]domain.DetailEdit) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		current, err := getOrder(ctx, tx, id, true)
		if err != nil {
			return err
		}

		now := r.now()
		if now.Before(current.UpdatedAt) {
			now = current.UpdatedAt
		}
		details, err := domain.ApplyEdits(current.Details, edits, now)
		if err != nil {
			return err
		}

		for _, detail := range details {
			if _, err := tx.ExecContext(ctx, `
				UPDATE order_details
				SET price = $1,
				    quantity = $2,
				    updated_at = $3
				WHERE id = $4
				  AND order_id = $5
			`, detail.Price, detail.Quantity, detail.UpdatedAt, detail.ID, id); err != nil {
				return storeError("update order detail", err)
			}
		}

		if _, err := tx.ExecContext(ctx, `UPDATE orders SET updated_at = $1 WHERE id = $2`, now, id); err != nil {
			return storeError("touch order", err)
		}

		current.Details = details
		current.UpdatedAt = now
		order = current
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
		if err != nil {
			return storeError("delete order", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return storeError("rows affected", err)
		}
		if affected == 0 {
			return domain.OrderNotFound(id)
		}
		return nil
	})
}

func (r *orderRepository) FindFirstByProductID(ctx context.Context, productID string) (domain.OrderDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	details, err := loadDetails(ctx, r.db, `WHERE product_id = $1 ORDER BY id ASC LIMIT 1`, productID)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	if len(details) == 0 {
		return domain.OrderDetail{}, domain.ErrOrderDetailNotFound
	}
	return details[0], nil
}

func getOrder(ctx context.Context, q queryer, id int64, forUpdate bool) (domain.Order, error) {
	query := `SELECT id, created_at, updated_at FROM orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var order domain.Order
	if err := q.QueryRowContext(ctx, query, id).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.OrderNotFound(id)
		}
		return domain.Order{}, storeError("select order", err)
	}

	details, err := loadDetails(ctx, q, `WHERE order_id = $1 ORDER BY id ASC`, id)
	if err != nil {
		return domain.Order{}, err
	}
	order.Details = details

	return order, nil
}

// loadDetails выбирает позиции по условию where, всегда по возрастанию ID.
func loadDetails(ctx context.Context, q queryer, where string, args ...any) ([]domain.OrderDetail, error) {
	query := `
		SELECT id, order_id, product_id, price, quantity, created_at, updated_at
		FROM order_details
	` + where

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("load order details", err)
	}
	defer rows.Close()

	details := make([]domain.OrderDetail, 0)
	for rows.Next() {
		var detail domain.OrderDetail
		if err := rows.Scan(
			&detail.ID, &detail.OrderID, &detail.ProductID, &detail.Price,
			&detail.Quantity, &detail.CreatedAt, &detail.UpdatedAt,
		); err != nil {
			return nil, storeError("scan order detail", err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate order details", err)
	}

	return details, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
