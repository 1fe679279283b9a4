package model

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var monthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

var rubPrinter = message.NewPrinter(language.Russian)

func formatDate(t time.Time) string {
	return fmt.Sprintf("%d %s в %02d:%02d", t.Day(), monthsGenitive[t.Month()-1], t.Hour(), t.Minute())
}

// StatusInfo описывает этап торгов для карточки каталога.
// Неизвестный статус возвращается как есть.
func (l *Lot) StatusInfo() string {
	switch l.status {
	case LotStatusActive:
		return "Открыто до " + formatDate(l.datetime)
	case LotStatusClosed:
		return "Закрыто " + formatDate(l.datetime)
	case LotStatusWait:
		return "Откроется " + formatDate(l.datetime)
	default:
		return string(l.status)
	}
}

// TimeStatus возвращает время до открытия или закрытия торгов относительно now.
func (l *Lot) TimeStatus(now time.Time) string {
	if l.status == LotStatusClosed {
		return "Аукцион завершен"
	}

	left := l.datetime.Sub(now)
	if left < 0 {
		left = 0
	}

	days := left / (24 * time.Hour)
	left -= days * 24 * time.Hour
	hours := left / time.Hour
	left -= hours * time.Hour
	minutes := left / time.Minute
	left -= minutes * time.Minute
	seconds := left / time.Second

	return fmt.Sprintf("%dд %dч %d мин %d сек", int64(days), int64(hours), int64(minutes), int64(seconds))
}

// AuctionStatus возвращает подпись к таймеру торгов.
func (l *Lot) AuctionStatus() string {
	switch l.status {
	case LotStatusClosed:
		return "Продано за " + rubPrinter.Sprint(number.Decimal(l.price)) + "₽"
	case LotStatusWait:
		return "До начала аукциона"
	case LotStatusActive:
		return "До закрытия лота"
	default:
		return ""
	}
}
