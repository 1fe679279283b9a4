// Package model содержит доменные сущности витрины аукциона: лоты,
// их торги и агрегат состояния приложения.
package model

import "github.com/mmeshcher/auction-storefront/internal/events"

// Имена событий, которые публикуют сущности.
const (
	EventCatalogChanged    = "catalog-changed"
	EventPreviewChanged    = "preview-changed"
	EventLotChanged        = "lot-changed"
	EventOrderFieldChanged = "order-field-changed"
	EventOrderSubmitted    = "order-submitted"
)

// OrderErrorEvent возвращает имя события об ошибке формы заказа, например order.phone:error.
func OrderErrorEvent(kind ValidationKind) string {
	return "order." + string(kind) + ":error"
}

// Model — общая основа наблюдаемых сущностей: ссылка на шину и публикация изменений.
type Model struct {
	events *events.Bus
}

// NewModel связывает сущность с шиной уведомлений.
func NewModel(bus *events.Bus) Model {
	return Model{events: bus}
}

// Announce публикует событие об изменении сущности.
func (m Model) Announce(name string, payload any) {
	if m.events == nil {
		return
	}
	m.events.Emit(name, payload)
}

// Bus возвращает шину, к которой привязана сущность.
func (m Model) Bus() *events.Bus {
	return m.events
}

// CatalogChanged — нагрузка события catalog-changed.
type CatalogChanged struct {
	Catalog []*Lot
}

// PreviewChanged — нагрузка события preview-changed. Lot равен nil, когда просмотр закрыт.
type PreviewChanged struct {
	Lot *Lot
}

// LotChanged — нагрузка события lot-changed.
type LotChanged struct {
	ID    string
	Price int64
}

// OrderErrors — нагрузка событий order.<kind>:error: полный набор нарушений формы.
type OrderErrors struct {
	Kinds []ValidationKind
}

// OrderFieldChanged — команда изменения поля формы заказа.
type OrderFieldChanged struct {
	Field OrderField
	Value string
}

// OrderSubmitted — нагрузка события order-submitted.
type OrderSubmitted struct {
	ID    string
	Total int64
}
