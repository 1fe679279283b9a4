package model

import "github.com/mmeshcher/auction-storefront/internal/validation"

// Order — черновик заказа: контакты покупателя и идентификаторы выбранных лотов.
type Order struct {
	Email string
	Phone string
	Items []string
}

// OrderField перечисляет редактируемые поля формы заказа.
type OrderField int

const (
	OrderFieldEmail OrderField = iota + 1
	OrderFieldPhone
)

// String возвращает имя поля так, как его видит форма.
func (f OrderField) String() string {
	switch f {
	case OrderFieldEmail:
		return "email"
	case OrderFieldPhone:
		return "phone"
	default:
		return "unknown"
	}
}

// ParseOrderField разбирает имя поля формы.
func ParseOrderField(s string) (OrderField, bool) {
	switch s {
	case "email":
		return OrderFieldEmail, true
	case "phone":
		return OrderFieldPhone, true
	default:
		return 0, false
	}
}

// ValidationKind — вид нарушения правил формы заказа.
type ValidationKind string

const (
	ValidationNoField ValidationKind = "no-field"
	ValidationPhone   ValidationKind = "phone"
	ValidationEmail   ValidationKind = "email"
)

// validateOrder собирает все нарушения в фиксированном порядке: no-field, phone, email.
func validateOrder(o Order) []ValidationKind {
	var kinds []ValidationKind

	if o.Email == "" || o.Phone == "" {
		kinds = append(kinds, ValidationNoField)
	}
	if !validation.IsValidPhone(o.Phone) {
		kinds = append(kinds, ValidationPhone)
	}
	if !validation.IsValidEmail(o.Email) {
		kinds = append(kinds, ValidationEmail)
	}

	return kinds
}
