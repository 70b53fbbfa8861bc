package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation - общий признак некорректного входа (ValidationFailed).
	ErrValidation = errors.New("validation failed")
	// Ошибка отсутствующего идентификатора товара.
	ErrProductIDRequired = errors.New("product_id is required")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrDetailQtyInvalid = errors.New("quantity must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrDetailPriceInvalid = errors.New("price must be non-negative")
	// Цена не помещается в NUMERIC(18,2): больше 16 целых или 2 дробных знаков.
	ErrDetailPriceOutOfRange = errors.New("price must have at most 16 integer and 2 fractional digits")
	// Ошибка некорректных параметров пагинации.
	ErrPageInvalid = errors.New("page and page_size must be positive")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderDetailNotFound возвращается, если ни одна позиция не подошла под фильтр.
	ErrOrderDetailNotFound = errors.New("order detail not found")
	// ErrDetailKeyNotFound - набор позиций в обновлении не совпадает с сохранённым (KeyNotFound).
	ErrDetailKeyNotFound = errors.New("order detail key not found")
)

// NotFoundError сообщает об отсутствии заказа с конкретным идентификатором.
type NotFoundError struct {
	OrderID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Order with id %d not found", e.OrderID)
}

// Is позволяет сравнивать ошибку с ErrOrderNotFound через errors.Is.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrOrderNotFound
}

// OrderNotFound создаёт NotFoundError для заказа.
func OrderNotFound(id int64) error {
	return &NotFoundError{OrderID: id}
}

// DetailKeyError уточняет, какая позиция не сошлась при обновлении.
type DetailKeyError struct {
	DetailID int64
	Reason   string
}

func (e *DetailKeyError) Error() string {
	return fmt.Sprintf("order detail %d %s", e.DetailID, e.Reason)
}

// Is позволяет сравнивать ошибку с ErrDetailKeyNotFound через errors.Is.
func (e *DetailKeyError) Is(target error) bool {
	return target == ErrDetailKeyNotFound
}

// IsNotFound проверяет, что ошибка означает отсутствие заказа.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}

// IsValidation проверяет, что ошибка относится к некорректному входу.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsKeyNotFound проверяет, что ошибка означает несовпадение ключей позиций.
func IsKeyNotFound(err error) bool {
	return errors.Is(err, ErrDetailKeyNotFound)
}
