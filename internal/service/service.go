// Package service связывает доменную модель витрины с API аукциона и
// сериализует команды, приходящие из HTTP-слоя.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/auction-storefront/internal/auctionapi"
	"github.com/mmeshcher/auction-storefront/internal/events"
	"github.com/mmeshcher/auction-storefront/internal/model"
)

var (
	// ErrInvalidOrder возвращается при оформлении заказа с невалидной формой.
	ErrInvalidOrder = errors.New("order form is invalid")
	// ErrEmptyBasket возвращается при оформлении пустого заказа.
	ErrEmptyBasket = errors.New("basket is empty")
	// ErrLotNotWon возвращается при попытке добавить в заказ лот, который пользователь не выиграл.
	ErrLotNotWon = errors.New("lot is not won by user")
)

// API описывает контракт API аукциона, используемый сервисом.
type API interface {
	GetLotList(ctx context.Context) ([]model.LotRecord, error)
	GetLotItem(ctx context.Context, id string) (*model.LotRecord, error)
	PlaceBid(ctx context.Context, id string, price int64) (*auctionapi.BidResult, error)
	OrderLots(ctx context.Context, order auctionapi.OrderRequest) (*auctionapi.OrderResult, error)
}

// Service владеет шиной и агрегатом приложения. Доменная модель однопоточна,
// поэтому каждая команда выполняется под mu. Обработчики событий вызываются
// под той же блокировкой и не должны обращаться к методам Service.
type Service struct {
	mu     sync.Mutex
	bus    *events.Bus
	app    *model.App
	api    API
	logger *zap.Logger
	now    func() time.Time
}

// NewService создаёт сервис с собственной шиной уведомлений.
func NewService(api API, logger *zap.Logger, opts ...model.AppOption) *Service {
	bus := events.NewBus()
	s := &Service{
		bus:    bus,
		app:    model.NewApp(bus, opts...),
		api:    api,
		logger: logger,
		now:    time.Now,
	}

	bus.SubscribeAll(func(name string, payload any) {
		logger.Debug("event", zap.String("event", name), zap.String("payload", fmt.Sprintf("%T", payload)))
	})
	events.On(bus, model.EventOrderFieldChanged, func(c model.OrderFieldChanged) {
		s.app.SetOrderField(c.Field, c.Value)
	})

	return s
}

// Bus возвращает шину сервиса для подключения наблюдателей. Подписываться
// следует до начала обработки запросов.
func (s *Service) Bus() *events.Bus {
	return s.bus
}

// LoadCatalog загружает каталог из API и заменяет им текущий.
func (s *Service) LoadCatalog(ctx context.Context) error {
	records, err := s.api.GetLotList(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.app.LoadCatalog(records)
	return nil
}

// Catalog возвращает снимок каталога.
func (s *Service) Catalog() []LotView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.views(s.app.Catalog())
}

// OpenLot дополняет лот подробной карточкой из API и открывает его для просмотра.
func (s *Service) OpenLot(ctx context.Context, id string) (LotView, error) {
	s.mu.Lock()
	exists := s.app.Lot(id) != nil
	s.mu.Unlock()
	if !exists {
		return LotView{}, model.ErrLotNotFound
	}

	detail, err := s.api.GetLotItem(ctx, id)
	if err != nil {
		return LotView{}, fmt.Errorf("open lot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lot := s.app.Lot(id)
	if lot == nil {
		return LotView{}, model.ErrLotNotFound
	}

	patch := model.LotPatch{Description: &detail.Description}
	if len(lot.History()) == 0 {
		patch.History = detail.History
	}
	lot.ApplyPatch(patch)
	s.app.SelectPreview(lot)

	return s.view(lot), nil
}

// ClosePreview закрывает просмотр лота.
func (s *Service) ClosePreview() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.app.SelectPreview(nil)
}

// Preview возвращает открытый лот, если он есть.
func (s *Service) Preview() (LotView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lot := s.app.Preview()
	if lot == nil {
		return LotView{}, false
	}
	return s.view(lot), true
}

// PlaceBid делает ставку на лот. Отклонённая ставка логируется и
// возвращается вызывающему. Принятая ставка отправляется на сервер;
// ошибка отправки не откатывает локальное состояние.
func (s *Service) PlaceBid(ctx context.Context, id string, amount int64) (LotView, error) {
	s.mu.Lock()
	lot := s.app.Lot(id)
	if lot == nil {
		s.mu.Unlock()
		return LotView{}, model.ErrLotNotFound
	}
	if err := lot.PlaceBid(amount); err != nil {
		s.mu.Unlock()
		s.logger.Info("bid rejected", zap.String("lot", id), zap.Int64("amount", amount), zap.Error(err))
		return LotView{}, err
	}
	view := s.view(lot)
	s.mu.Unlock()

	if _, err := s.api.PlaceBid(ctx, id, amount); err != nil {
		s.logger.Warn("send bid error", zap.String("lot", id), zap.Int64("amount", amount), zap.Error(err))
	}

	return view, nil
}

// ActiveLots возвращает идущие торги с участием пользователя.
func (s *Service) ActiveLots() []LotView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.views(s.app.ActiveLotsForUser())
}

// ClosedLots возвращает выигранные пользователем лоты.
func (s *Service) ClosedLots() []LotView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.views(s.app.ClosedLotsWonByUser())
}

// ToggleItem добавляет выигранный лот в заказ или убирает лот из заказа.
func (s *Service) ToggleItem(id string, included bool) (BasketView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if included {
		lot := s.app.Lot(id)
		if lot == nil {
			return BasketView{}, model.ErrLotNotFound
		}
		if lot.Status() != model.LotStatusClosed || !lot.IsWinningBid() {
			return BasketView{}, ErrLotNotWon
		}
	}

	s.app.ToggleOrderItem(id, included)
	return s.basket(), nil
}

// Basket возвращает состав заказа и его сумму.
func (s *Service) Basket() BasketView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.basket()
}

// ChangeOrderField публикует команду изменения поля формы и возвращает состояние формы.
func (s *Service) ChangeOrderField(field model.OrderField, value string) FormState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bus.Emit(model.EventOrderFieldChanged, model.OrderFieldChanged{Field: field, Value: value})
	return s.form()
}

// OrderForm возвращает текущее состояние формы заказа.
func (s *Service) OrderForm() FormState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.form()
}

// SubmitOrder оформляет заказ. После успешного ответа API из корзины убираются
// отправленные лоты; добавленные во время запроса остаются.
func (s *Service) SubmitOrder(ctx context.Context) (*auctionapi.OrderResult, error) {
	s.mu.Lock()
	order := s.app.Order()
	kinds := s.app.Validate()
	s.mu.Unlock()

	if len(order.Items) == 0 {
		return nil, ErrEmptyBasket
	}
	if len(kinds) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrder, kinds)
	}

	res, err := s.api.OrderLots(ctx, auctionapi.OrderRequest{
		Email: order.Email,
		Phone: order.Phone,
		Items: order.Items,
	})
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.app.ClearItems(order.Items)
	s.bus.Emit(model.EventOrderSubmitted, model.OrderSubmitted{ID: res.ID, Total: res.Total})

	return res, nil
}

func (s *Service) basket() BasketView {
	return BasketView{
		Items: s.app.Order().Items,
		Total: s.app.TotalPrice(),
	}
}

func (s *Service) form() FormState {
	order := s.app.Order()
	kinds := s.app.Validate()
	return FormState{
		Email:  order.Email,
		Phone:  order.Phone,
		Valid:  len(kinds) == 0,
		Errors: kinds,
	}
}
