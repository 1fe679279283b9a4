package model

import (
	"fmt"
	"time"

	"github.com/mmeshcher/auction-storefront/internal/events"
)

// LotStatus описывает этап торгов по лоту.
type LotStatus string

const (
	LotStatusWait   LotStatus = "wait"
	LotStatusActive LotStatus = "active"
	LotStatusClosed LotStatus = "closed"
)

// closeMultiplier — во сколько раз ставка должна превысить стартовую цену, чтобы закрыть лот.
const closeMultiplier = 10

// DefaultHistorySize — ёмкость истории ставок, если каталог её не прислал.
const DefaultHistorySize = 5

// LotRecord — запись о лоте в том виде, в котором её отдаёт каталог.
type LotRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	About       string  `json:"about"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Status      string  `json:"status"`
	Datetime    string  `json:"datetime"`
	Price       int64   `json:"price"`
	MinPrice    int64   `json:"minPrice"`
	History     []int64 `json:"history"`
}

// LotPatch — частичное обновление лота. Nil-поля не меняются.
type LotPatch struct {
	Title       *string
	About       *string
	Description *string
	Image       *string
	History     []int64
}

// Lot — лот аукциона со своими торгами.
type Lot struct {
	Model

	id          string
	title       string
	about       string
	description string
	image       string

	status   LotStatus
	datetime time.Time
	price    int64
	minPrice int64
	history  History

	userLastBid int64
}

// NewLot создаёт лот из записи каталога. Цена не опускается ниже стартовой.
func NewLot(rec LotRecord, bus *events.Bus, historySize int) *Lot {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	if len(rec.History) > 0 {
		historySize = len(rec.History)
	}

	price := rec.Price
	if price < rec.MinPrice {
		price = rec.MinPrice
	}

	return &Lot{
		Model:       NewModel(bus),
		id:          rec.ID,
		title:       rec.Title,
		about:       rec.About,
		description: rec.Description,
		image:       rec.Image,
		status:      LotStatus(rec.Status),
		datetime:    parseDatetime(rec.Datetime),
		price:       price,
		minPrice:    rec.MinPrice,
		history:     NewHistory(historySize, rec.History...),
	}
}

func parseDatetime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (l *Lot) ID() string { return l.id }
func (l *Lot) Title() string { return l.title }
func (l *Lot) About() string { return l.about }
func (l *Lot) Description() string { return l.description }
func (l *Lot) Image() string { return l.image }
func (l *Lot) Status() LotStatus { return l.status }
func (l *Lot) Datetime() time.Time { return l.datetime }
func (l *Lot) Price() int64 { return l.price }
func (l *Lot) MinPrice() int64 { return l.minPrice }
func (l *Lot) History() []int64 { return l.history.Values() }
func (l *Lot) UserLastBid() int64 { return l.userLastBid }

// ApplyPatch поверхностно присваивает лоту заданные поля.
func (l *Lot) ApplyPatch(p LotPatch) {
	if p.Title != nil {
		l.title = *p.Title
	}
	if p.About != nil {
		l.about = *p.About
	}
	if p.Description != nil {
		l.description = *p.Description
	}
	if p.Image != nil {
		l.image = *p.Image
	}
	if len(p.History) > 0 {
		l.history = NewHistory(len(p.History), p.History...)
	}
}

// PlaceBid принимает ставку пользователя. Отклонённая ставка не меняет
// состояние и не публикует событий.
func (l *Lot) PlaceBid(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBidAmount, amount)
	}
	if l.status != LotStatusActive {
		return fmt.Errorf("%w: status %q", ErrLotNotActive, l.status)
	}
	if amount <= l.price {
		return fmt.Errorf("%w: %d <= %d", ErrBidTooLow, amount, l.price)
	}

	l.price = amount
	l.history.Push(amount)
	l.userLastBid = amount

	if amount > l.minPrice*closeMultiplier {
		l.status = LotStatusClosed
	}

	l.Announce(EventLotChanged, LotChanged{ID: l.id, Price: amount})
	return nil
}

// ClearParticipation забывает последнюю ставку пользователя.
func (l *Lot) ClearParticipation() {
	l.userLastBid = 0
}

// NextBid возвращает минимальную рекомендуемую следующую ставку: цена плюс 10%, с округлением вниз.
func (l *Lot) NextBid() int64 {
	return l.price * 11 / 10
}

// IsWinningBid сообщает, что последняя ставка пользователя лидирует.
func (l *Lot) IsWinningBid() bool {
	return l.userLastBid == l.price
}

// HasParticipated сообщает, что пользователь делал ставку на лот.
func (l *Lot) HasParticipated() bool {
	return l.userLastBid != 0
}
