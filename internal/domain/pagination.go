package domain

import "fmt"

// Page описывает запрошенную страницу списка заказов.
type Page struct {
	Number int
	Size   int
}

// Validate проверяет, что номер и размер страницы положительные.
func (p Page) Validate() error {
	if p.Number < 1 || p.Size < 1 {
		return fmt.Errorf("%w: %w (page=%d, page_size=%d)", ErrValidation, ErrPageInvalid, p.Number, p.Size)
	}
	return nil
}

// Window возвращает limit и offset выборки для страницы.
//
// limit накопительный: size*number, а не size.
func (p Page) Window() (limit, offset int) {
	return p.Size * p.Number, (p.Number - 1) * p.Size
}

// TotalPages считает количество страниц; для пустой коллекции всегда 1.
func TotalPages(totalItems, pageSize int) int {
	if totalItems == 0 {
		return 1
	}
	return (totalItems + pageSize - 1) / pageSize
}
