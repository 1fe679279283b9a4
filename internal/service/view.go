package service

import (
	"time"

	"github.com/mmeshcher/auction-storefront/internal/model"
)

// LotView — снимок лота вместе с производными полями для отображения.
type LotView struct {
	ID          string
	Title       string
	About       string
	Description string
	Image       string

	Status        model.LotStatus
	StatusInfo    string
	TimeStatus    string
	AuctionStatus string
	Datetime      time.Time

	Price    int64
	MinPrice int64
	NextBid  int64
	History  []int64

	UserLastBid     int64
	IsWinningBid    bool
	HasParticipated bool
}

// BasketView — состав заказа и его сумма.
type BasketView struct {
	Items []string
	Total int64
}

// FormState — состояние формы заказа после последнего изменения.
type FormState struct {
	Email  string
	Phone  string
	Valid  bool
	Errors []model.ValidationKind
}

func (s *Service) view(l *model.Lot) LotView {
	return LotView{
		ID:              l.ID(),
		Title:           l.Title(),
		About:           l.About(),
		Description:     l.Description(),
		Image:           l.Image(),
		Status:          l.Status(),
		StatusInfo:      l.StatusInfo(),
		TimeStatus:      l.TimeStatus(s.now()),
		AuctionStatus:   l.AuctionStatus(),
		Datetime:        l.Datetime(),
		Price:           l.Price(),
		MinPrice:        l.MinPrice(),
		NextBid:         l.NextBid(),
		History:         l.History(),
		UserLastBid:     l.UserLastBid(),
		IsWinningBid:    l.IsWinningBid(),
		HasParticipated: l.HasParticipated(),
	}
}

func (s *Service) views(lots []*model.Lot) []LotView {
	out := make([]LotView, 0, len(lots))
	for _, l := range lots {
		out = append(out, s.view(l))
	}
	return out
}
