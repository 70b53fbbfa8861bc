package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceScale - количество знаков после запятой, с которым хранится цена позиции.
const PriceScale = 2

const (
	// priceIntegerDigits - целая часть NUMERIC(18,2).
	priceIntegerDigits = 16
	// maxPriceLength ограничивает длину строки до разбора.
	maxPriceLength = 64
)

// OrderDetail представляет одну позицию заказа.
type OrderDetail struct {
	ID int64
	// OrderID - идентификатор заказа-владельца; после создания не меняется.
	OrderID   int64
	ProductID string
	// Price - цена за единицу, всегда с точностью PriceScale знаков.
	Price     decimal.Decimal
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Order агрегирует заказ и его позиции, упорядоченные по ID.
type Order struct {
	ID        int64
	Details   []OrderDetail
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DetailInput описывает позицию, передаваемую при создании заказа.
type DetailInput struct {
	ProductID string
	Price     decimal.Decimal
	Quantity  int32
}

// DetailEdit описывает изменение цены и количества существующей позиции.
type DetailEdit struct {
	Price    decimal.Decimal
	Quantity int32
}

// NormalizePrice приводит цену к масштабу хранения.
func NormalizePrice(price decimal.Decimal) decimal.Decimal {
	return price.Round(PriceScale)
}

// ParsePrice разбирает строковое представление цены без потери точности.
// Отрицательные цены и цены вне NUMERIC(18,2) отклоняются до округления.
func ParsePrice(raw string) (decimal.Decimal, error) {
	if len(raw) > maxPriceLength {
		return decimal.Decimal{}, fmt.Errorf("%w: price is longer than %d characters", ErrValidation, maxPriceLength)
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: price %q is not a decimal", ErrValidation, raw)
	}
	if err := checkPrice(price); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: price %q: %w", ErrValidation, raw, err)
	}
	return NormalizePrice(price), nil
}

// checkPrice проверяет знак и разрядность цены.
// Экспонента сверяется до Truncate: "1e200000000" не должен раскрываться.
func checkPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrDetailPriceInvalid
	}
	exp := int64(price.Exponent())
	if exp > priceIntegerDigits || exp < -maxPriceLength {
		return ErrDetailPriceOutOfRange
	}
	if price.IsZero() {
		return nil
	}
	if int64(price.NumDigits())+exp > priceIntegerDigits {
		return ErrDetailPriceOutOfRange
	}
	if !price.Equal(price.Truncate(PriceScale)) {
		return ErrDetailPriceOutOfRange
	}
	return nil
}

// FormatPrice возвращает цену строкой ровно с двумя знаками после запятой.
func FormatPrice(price decimal.Decimal) string {
	return price.StringFixed(PriceScale)
}

// Validate проверяет инварианты позиции для создания заказа.
func (in DetailInput) Validate() error {
	if in.ProductID == "" {
		return ErrProductIDRequired
	}
	if err := checkPrice(in.Price); err != nil {
		return err
	}
	if in.Quantity <= 0 {
		return ErrDetailQtyInvalid
	}
	return nil
}

// Validate проверяет инварианты правки позиции.
func (e DetailEdit) Validate() error {
	if err := checkPrice(e.Price); err != nil {
		return err
	}
	if e.Quantity <= 0 {
		return ErrDetailQtyInvalid
	}
	return nil
}

// ValidateDetails проверяет все позиции создаваемого заказа.
// Пустой список допустим: минимального количества позиций нет.
func ValidateDetails(details []DetailInput) error {
	for idx, detail := range details {
		if err := detail.Validate(); err != nil {
			return fmt.Errorf("%w: order_details[%d]: %w", ErrValidation, idx, err)
		}
	}
	return nil
}

// ApplyEdits применяет правки к позициям заказа и возвращает новый срез.
//
// Политика строгая: каждая существующая позиция должна присутствовать в edits,
// а каждый ключ edits должен принадлежать заказу. Иначе ErrDetailKeyNotFound.
func ApplyEdits(details []OrderDetail, edits map[int64]DetailEdit, now time.Time) ([]OrderDetail, error) {
	owned := make(map[int64]struct{}, len(details))
	result := make([]OrderDetail, 0, len(details))

	for _, detail := range details {
		owned[detail.ID] = struct{}{}

		edit, ok := edits[detail.ID]
		if !ok {
			return nil, &DetailKeyError{DetailID: detail.ID, Reason: "missing from update"}
		}
		if err := edit.Validate(); err != nil {
			return nil, fmt.Errorf("%w: order_details[id=%d]: %w", ErrValidation, detail.ID, err)
		}

		detail.Price = NormalizePrice(edit.Price)
		detail.Quantity = edit.Quantity
		detail.UpdatedAt = now
		result = append(result, detail)
	}

	for id := range edits {
		if _, ok := owned[id]; !ok {
			return nil, &DetailKeyError{DetailID: id, Reason: "does not belong to order"}
		}
	}

	return result, nil
}
