// Package handler содержит HTTP-обработчики витрины аукциона: каталог,
// ставки, корзину и форму заказа.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/auction-storefront/internal/auctionapi"
	"github.com/mmeshcher/auction-storefront/internal/model"
	"github.com/mmeshcher/auction-storefront/internal/service"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	LoadCatalog(ctx context.Context) error
	Catalog() []service.LotView
	OpenLot(ctx context.Context, id string) (service.LotView, error)
	ClosePreview()
	PlaceBid(ctx context.Context, id string, amount int64) (service.LotView, error)
	ActiveLots() []service.LotView
	ClosedLots() []service.LotView
	ToggleItem(id string, included bool) (service.BasketView, error)
	Basket() service.BasketView
	ChangeOrderField(field model.OrderField, value string) service.FormState
	OrderForm() service.FormState
	SubmitOrder(ctx context.Context) (*auctionapi.OrderResult, error)
}

// Handler реализует HTTP-обработчики витрины.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
	}
}

type lotResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	About           string  `json:"about"`
	Description     string  `json:"description,omitempty"`
	Image           string  `json:"image"`
	Status          string  `json:"status"`
	StatusInfo      string  `json:"statusInfo"`
	TimeStatus      string  `json:"timeStatus"`
	AuctionStatus   string  `json:"auctionStatus"`
	Datetime        string  `json:"datetime,omitempty"`
	Price           int64   `json:"price"`
	MinPrice        int64   `json:"minPrice"`
	NextBid         int64   `json:"nextBid"`
	History         []int64 `json:"history"`
	UserLastBid     int64   `json:"userLastBid"`
	IsWinningBid    bool    `json:"isWinningBid"`
	HasParticipated bool    `json:"hasParticipated"`
}

func newLotResponse(v service.LotView) lotResponse {
	resp := lotResponse{
		ID:              v.ID,
		Title:           v.Title,
		About:           v.About,
		Description:     v.Description,
		Image:           v.Image,
		Status:          string(v.Status),
		StatusInfo:      v.StatusInfo,
		TimeStatus:      v.TimeStatus,
		AuctionStatus:   v.AuctionStatus,
		Price:           v.Price,
		MinPrice:        v.MinPrice,
		NextBid:         v.NextBid,
		History:         v.History,
		UserLastBid:     v.UserLastBid,
		IsWinningBid:    v.IsWinningBid,
		HasParticipated: v.HasParticipated,
	}
	if !v.Datetime.IsZero() {
		resp.Datetime = v.Datetime.Format(time.RFC3339)
	}
	return resp
}

func newLotsResponse(views []service.LotView) []lotResponse {
	resp := make([]lotResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, newLotResponse(v))
	}
	return resp
}

type basketResponse struct {
	Items []string `json:"items"`
	Total int64    `json:"total"`
}

func newBasketResponse(b service.BasketView) basketResponse {
	items := b.Items
	if items == nil {
		items = []string{}
	}
	return basketResponse{Items: items, Total: b.Total}
}

type formResponse struct {
	Email  string   `json:"email"`
	Phone  string   `json:"phone"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func newFormResponse(f service.FormState) formResponse {
	errs := make([]string, 0, len(f.Errors))
	for _, kind := range f.Errors {
		errs = append(errs, string(kind))
	}
	return formResponse{Email: f.Email, Phone: f.Phone, Valid: f.Valid, Errors: errs}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

// GetLots возвращает каталог лотов.
func (h *Handler) GetLots(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, newLotsResponse(h.service.Catalog()))
}

// ReloadLots перезагружает каталог из API аукциона.
func (h *Handler) ReloadLots(w http.ResponseWriter, r *http.Request) {
	if err := h.service.LoadCatalog(r.Context()); err != nil {
		h.logger.Error("reload catalog error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	h.writeJSON(w, http.StatusOK, newLotsResponse(h.service.Catalog()))
}

// OpenLot открывает лот для подробного просмотра.
func (h *Handler) OpenLot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lot, err := h.service.OpenLot(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrLotNotFound) || errors.Is(err, auctionapi.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("open lot error", zap.Error(err), zap.String("lot", id))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, newLotResponse(lot))
}

// ClosePreview закрывает просмотр лота.
func (h *Handler) ClosePreview(w http.ResponseWriter, r *http.Request) {
	h.service.ClosePreview()
	w.WriteHeader(http.StatusNoContent)
}

type bidRequest struct {
	Price int64 `json:"price"`
}

// PlaceBid принимает ставку на лот.
func (h *Handler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req bidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	lot, err := h.service.PlaceBid(r.Context(), id, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrLotNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		case errors.Is(err, model.ErrLotNotActive):
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
		case errors.Is(err, model.ErrBidTooLow), errors.Is(err, model.ErrInvalidBidAmount):
			http.Error(w, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
		default:
			h.logger.Error("place bid error", zap.Error(err), zap.String("lot", id))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, newLotResponse(lot))
}

// GetActiveLots возвращает торги, в которых участвует пользователь.
func (h *Handler) GetActiveLots(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, newLotsResponse(h.service.ActiveLots()))
}

// GetClosedLots возвращает выигранные пользователем лоты.
func (h *Handler) GetClosedLots(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, newLotsResponse(h.service.ClosedLots()))
}

// GetBasket возвращает состав заказа и сумму.
func (h *Handler) GetBasket(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, newBasketResponse(h.service.Basket()))
}

type toggleRequest struct {
	Included bool `json:"included"`
}

// ToggleBasketItem добавляет лот в заказ или убирает его.
func (h *Handler) ToggleBasketItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	basket, err := h.service.ToggleItem(id, req.Included)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrLotNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		case errors.Is(err, service.ErrLotNotWon):
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
		default:
			h.logger.Error("toggle basket item error", zap.Error(err), zap.String("lot", id))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, newBasketResponse(basket))
}

type orderFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// GetOrderForm возвращает состояние формы заказа.
func (h *Handler) GetOrderForm(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, newFormResponse(h.service.OrderForm()))
}

// ChangeOrderField изменяет одно поле формы заказа.
func (h *Handler) ChangeOrderField(w http.ResponseWriter, r *http.Request) {
	var req orderFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	field, ok := model.ParseOrderField(req.Field)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, newFormResponse(h.service.ChangeOrderField(field, req.Value)))
}

type orderResponse struct {
	ID    string `json:"id"`
	Total int64  `json:"total"`
}

// SubmitOrder оформляет заказ.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.SubmitOrder(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyBasket), errors.Is(err, service.ErrInvalidOrder):
			http.Error(w, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
		default:
			h.logger.Error("submit order error", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, orderResponse{ID: res.ID, Total: res.Total})
}
