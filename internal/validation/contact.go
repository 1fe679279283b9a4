// Package validation содержит функции валидации входных данных.
package validation

import "regexp"

var (
	phoneRe = regexp.MustCompile(`^(8|\+7)\s?\(?\d{3}\)?\s?\d{3}[\s\-]?\d{2}[\s\-]?\d{2}$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// IsValidPhone проверяет российский мобильный номер: 8 или +7, затем XXX XXX XX XX.
func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// IsValidEmail проверяет адрес вида local@domain.tld.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
