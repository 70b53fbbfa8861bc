package domain

import "context"

// EventOrderCreated - имя события о создании заказа.
const EventOrderCreated = "order_created"

// EventPublisher доставляет доменные события во внешний канал.
// Доставка best-effort: ошибка не должна влиять на исход операции, породившей событие.
type EventPublisher interface {
	Publish(ctx context.Context, event string, key string, payload []byte) error
}
