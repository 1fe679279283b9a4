package model

import (
	"slices"
	"strings"

	"github.com/mmeshcher/auction-storefront/internal/events"
)

// App — агрегат состояния витрины: каталог, открытый лот и черновик заказа.
type App struct {
	Model

	historySize int

	catalog []*Lot
	preview *Lot
	order   Order
}

// AppOption настраивает агрегат.
type AppOption func(*App)

// WithHistorySize задаёт ёмкость истории ставок для лотов без истории в каталоге.
func WithHistorySize(n int) AppOption {
	return func(a *App) {
		if n > 0 {
			a.historySize = n
		}
	}
}

// NewApp создаёт пустой агрегат, публикующий изменения в bus.
func NewApp(bus *events.Bus, opts ...AppOption) *App {
	a := &App{
		Model:       NewModel(bus),
		historySize: DefaultHistorySize,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoadCatalog заменяет каталог новыми лотами из records с сохранением порядка.
// Открытый лот переключается на новый экземпляр с тем же id или закрывается,
// если такого лота в каталоге больше нет.
func (a *App) LoadCatalog(records []LotRecord) {
	catalog := make([]*Lot, 0, len(records))
	for _, rec := range records {
		catalog = append(catalog, NewLot(rec, a.Bus(), a.historySize))
	}
	a.catalog = catalog

	a.Announce(EventCatalogChanged, CatalogChanged{Catalog: a.Catalog()})

	if a.preview != nil {
		a.SelectPreview(a.Lot(a.preview.ID()))
	}
}

// Catalog возвращает лоты каталога в серверном порядке.
func (a *App) Catalog() []*Lot {
	return slices.Clone(a.catalog)
}

// Lot ищет лот по идентификатору. Возвращает nil, если его нет.
func (a *App) Lot(id string) *Lot {
	for _, l := range a.catalog {
		if l.ID() == id {
			return l
		}
	}
	return nil
}

// SelectPreview открывает лот для подробного просмотра; nil закрывает просмотр.
func (a *App) SelectPreview(lot *Lot) {
	a.preview = lot
	a.Announce(EventPreviewChanged, PreviewChanged{Lot: lot})
}

// Preview возвращает открытый лот или nil.
func (a *App) Preview() *Lot {
	return a.preview
}

// ActiveLotsForUser возвращает идущие торги, в которых участвует пользователь.
func (a *App) ActiveLotsForUser() []*Lot {
	var out []*Lot
	for _, l := range a.catalog {
		if l.Status() == LotStatusActive && l.HasParticipated() {
			out = append(out, l)
		}
	}
	return out
}

// ClosedLotsWonByUser возвращает закрытые лоты, выигранные пользователем.
func (a *App) ClosedLotsWonByUser() []*Lot {
	var out []*Lot
	for _, l := range a.catalog {
		if l.Status() == LotStatusClosed && l.IsWinningBid() {
			out = append(out, l)
		}
	}
	return out
}

// TotalPrice суммирует цены лотов заказа. Идентификаторы, которых нет в каталоге, пропускаются.
func (a *App) TotalPrice() int64 {
	var total int64
	for _, id := range a.order.Items {
		if l := a.Lot(id); l != nil {
			total += l.Price()
		}
	}
	return total
}

// ToggleOrderItem добавляет лот в заказ или убирает его оттуда.
func (a *App) ToggleOrderItem(id string, included bool) {
	if included {
		if !slices.Contains(a.order.Items, id) {
			a.order.Items = append(a.order.Items, id)
		}
		return
	}
	a.order.Items = slices.DeleteFunc(a.order.Items, func(item string) bool {
		return item == id
	})
}

// Order возвращает копию черновика заказа.
func (a *App) Order() Order {
	o := a.order
	o.Items = slices.Clone(a.order.Items)
	return o
}

// SetOrderField присваивает полю формы значение без краевых пробелов и
// сообщает, валиден ли черновик. Неизвестное поле не меняет черновик.
func (a *App) SetOrderField(field OrderField, value string) bool {
	switch field {
	case OrderFieldEmail:
		return a.SetEmail(value)
	case OrderFieldPhone:
		return a.SetPhone(value)
	default:
		return false
	}
}

// SetEmail задаёт адрес почты и перепроверяет форму.
func (a *App) SetEmail(value string) bool {
	a.order.Email = strings.TrimSpace(value)
	return a.revalidate()
}

// SetPhone задаёт телефон и перепроверяет форму.
func (a *App) SetPhone(value string) bool {
	a.order.Phone = strings.TrimSpace(value)
	return a.revalidate()
}

func (a *App) revalidate() bool {
	kinds := a.Validate()
	for _, kind := range kinds {
		a.Announce(OrderErrorEvent(kind), OrderErrors{Kinds: slices.Clone(kinds)})
	}
	return len(kinds) == 0
}

// Validate возвращает нарушения правил формы; пустой результат означает валидный черновик.
func (a *App) Validate() []ValidationKind {
	return validateOrder(a.order)
}

// ClearBasket убирает из заказа все лоты и забывает ставки пользователя по ним.
func (a *App) ClearBasket() {
	a.ClearItems(slices.Clone(a.order.Items))
}

// ClearItems убирает из заказа только перечисленные лоты и забывает ставки
// пользователя по ним. Остальные позиции заказа не меняются.
func (a *App) ClearItems(ids []string) {
	for _, id := range ids {
		a.ToggleOrderItem(id, false)
		if l := a.Lot(id); l != nil {
			l.ClearParticipation()
		}
	}
}
