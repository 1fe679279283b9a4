// Package auctionapi предоставляет клиент для API аукциона: каталог лотов, ставки и заказы.
package auctionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/mmeshcher/auction-storefront/internal/model"
)

// ErrNotFound возвращается, если API не знает запрошенный лот.
var ErrNotFound = errors.New("not found")

// Client инкапсулирует HTTP-взаимодействие с API аукциона.
type Client struct {
	apiURL     string
	cdnURL     string
	httpClient *retryablehttp.Client
}

// BidResult описывает ответ API на ставку.
type BidResult struct {
	ID      string  `json:"id"`
	Price   int64   `json:"price"`
	History []int64 `json:"history,omitempty"`
}

// OrderRequest — тело запроса на оформление заказа.
type OrderRequest struct {
	Email string   `json:"email"`
	Phone string   `json:"phone"`
	Items []string `json:"items"`
}

// OrderResult описывает ответ API на оформление заказа.
type OrderResult struct {
	ID    string `json:"id"`
	Total int64  `json:"total"`
}

type lotList struct {
	Total int               `json:"total"`
	Items []model.LotRecord `json:"items"`
}

// NewClient создаёт клиент API. Пути изображений дополняются адресом cdnURL.
func NewClient(apiURL, cdnURL string) *Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = 5 * time.Second
	rc.RetryMax = 3
	rc.RetryWaitMin = 50 * time.Millisecond
	rc.RetryWaitMax = 500 * time.Millisecond
	rc.Logger = nil

	return &Client{
		apiURL:     normalizeBase(apiURL),
		cdnURL:     strings.TrimRight(cdnURL, "/"),
		httpClient: rc,
	}
}

func normalizeBase(base string) string {
	base = strings.TrimRight(base, "/")
	if base != "" && !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return base
}

// GetLotList запрашивает каталог лотов.
func (c *Client) GetLotList(ctx context.Context) ([]model.LotRecord, error) {
	var list lotList
	if err := c.do(ctx, http.MethodGet, "/lot", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("get lot list: %w", err)
	}

	for i := range list.Items {
		list.Items[i].Image = c.imageURL(list.Items[i].Image)
	}
	return list.Items, nil
}

// GetLotItem запрашивает подробную карточку лота.
func (c *Client) GetLotItem(ctx context.Context, id string) (*model.LotRecord, error) {
	var rec model.LotRecord
	if err := c.do(ctx, http.MethodGet, "/lot/"+id, nil, nil, &rec); err != nil {
		return nil, fmt.Errorf("get lot %s: %w", id, err)
	}

	rec.Image = c.imageURL(rec.Image)
	return &rec, nil
}

// PlaceBid отправляет ставку пользователя на сервер. Повторы запроса
// помечаются одним ключом идемпотентности.
func (c *Client) PlaceBid(ctx context.Context, id string, price int64) (*BidResult, error) {
	body := struct {
		Price int64 `json:"price"`
	}{Price: price}
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}

	var res BidResult
	if err := c.do(ctx, http.MethodPost, "/lot/"+id+"/_bid", body, headers, &res); err != nil {
		return nil, fmt.Errorf("place bid on %s: %w", id, err)
	}
	return &res, nil
}

// OrderLots оформляет заказ. Повторы запроса помечаются одним ключом идемпотентности.
func (c *Client) OrderLots(ctx context.Context, order OrderRequest) (*OrderResult, error) {
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}

	var res OrderResult
	if err := c.do(ctx, http.MethodPost, "/order", order, headers, &res); err != nil {
		return nil, fmt.Errorf("order lots: %w", err)
	}
	return &res, nil
}

func (c *Client) imageURL(path string) string {
	if c.cdnURL == "" || path == "" {
		return path
	}
	return c.cdnURL + path
}

func (c *Client) do(ctx context.Context, method, path string, in any, headers map[string]string, out any) error {
	if c == nil || c.apiURL == "" {
		return fmt.Errorf("auction api client not configured")
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
