package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// orderRepositoryInMemory - простая in-memory реализация OrderRepository.
// Каждая операция выполняется под мьютексом целиком, что даёт ту же атомарность,
// что и транзакция в PostgreSQL.
type orderRepositoryInMemory struct {
	mu           sync.RWMutex
	items        map[int64]domain.Order
	nextOrderID  int64
	nextDetailID int64
	now          func() time.Time
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[int64]domain.Order),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *orderRepositoryInMemory) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}

// ListPage возвращает заказы по возрастанию ID, пропуская offset и ограничивая limit.
func (r *orderRepositoryInMemory) ListPage(_ context.Context, limit, offset int) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.sortedIDs()
	result := make([]domain.Order, 0)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || offset >= len(ids) {
		return result, nil
	}

	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	for _, id := range ids[offset:end] {
		result = append(result, cloneOrder(r.items[id]))
	}

	return result, nil
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) Get(_ context.Context, id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.OrderNotFound(id)
	}
	return cloneOrder(order), nil
}

// Create назначает идентификаторы заказу и позициям в порядке входа.
func (r *orderRepositoryInMemory) Create(_ context.Context, details []domain.DetailInput) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.nextOrderID++
	order := domain.Order{
		ID:        r.nextOrderID,
		Details:   make([]domain.OrderDetail, 0, len(details)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, in := range details {
		r.nextDetailID++
		order.Details = append(order.Details, domain.OrderDetail{
			ID:        r.nextDetailID,
			OrderID:   order.ID,
			ProductID: in.ProductID,
			Price:     domain.NormalizePrice(in.Price),
			Quantity:  in.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	r.items[order.ID] = order
	return cloneOrder(order), nil
}

// Update применяет правки под эксклюзивной блокировкой, поэтому параллельные правки не теряются.
func (r *orderRepositoryInMemory) Update(_ context.Context, id int64, edits map[int64]domain.DetailEdit) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.OrderNotFound(id)
	}

	now := r.now()
	details, err := domain.ApplyEdits(order.Details, edits, now)
	if err != nil {
		return domain.Order{}, err
	}
	order.Details = details
	if now.After(order.UpdatedAt) {
		order.UpdatedAt = now
	}

	r.items[id] = order
	return cloneOrder(order), nil
}

// Delete удаляет заказ вместе с позициями.
func (r *orderRepositoryInMemory) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.OrderNotFound(id)
	}
	delete(r.items, id)
	return nil
}

// FindFirstByProductID ищет позицию с минимальным ID среди всех заказов.
func (r *orderRepositoryInMemory) FindFirstByProductID(_ context.Context, productID string) (domain.OrderDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found domain.OrderDetail
		ok    bool
	)
	for _, order := range r.items {
		for _, detail := range order.Details {
			if detail.ProductID != productID {
				continue
			}
			if !ok || detail.ID < found.ID {
				found, ok = detail, true
			}
		}
	}
	if !ok {
		return domain.OrderDetail{}, domain.ErrOrderDetailNotFound
	}
	return found, nil
}

func (r *orderRepositoryInMemory) sortedIDs() []int64 {
	ids := make([]int64, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// cloneOrder копирует срез позиций, чтобы вызывающий код не мутировал хранилище.
func cloneOrder(order domain.Order) domain.Order {
	details := make([]domain.OrderDetail, len(order.Details))
	copy(details, order.Details)
	order.Details = details
	return order
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
