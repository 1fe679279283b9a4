package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/auction-storefront/internal/events"
)

func newActiveLot(t *testing.T, bus *events.Bus) *Lot {
	t.Helper()
	return NewLot(LotRecord{
		ID:       "L1",
		Title:    "Ваза",
		Status:   "active",
		Datetime: "2026-06-15T12:30:00Z",
		Price:    100,
		MinPrice: 50,
		History:  []int64{60, 70, 80, 90, 100},
	}, bus, 0)
}

func recordLotChanges(bus *events.Bus) *[]LotChanged {
	var got []LotChanged
	events.On(bus, EventLotChanged, func(c LotChanged) { got = append(got, c) })
	return &got
}

func TestPlaceBid_RejectedBidsLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   error
	}{
		{name: "below price", amount: 90, want: ErrBidTooLow},
		{name: "equal to price", amount: 100, want: ErrBidTooLow},
		{name: "zero", amount: 0, want: ErrInvalidBidAmount},
		{name: "negative", amount: -5, want: ErrInvalidBidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := events.NewBus()
			changes := recordLotChanges(bus)
			lot := newActiveLot(t, bus)
			historyBefore := lot.History()

			err := lot.PlaceBid(tt.amount)

			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, int64(100), lot.Price())
			assert.Equal(t, historyBefore, lot.History())
			assert.Equal(t, int64(0), lot.UserLastBid())
			assert.Empty(t, *changes)
		})
	}
}

func TestPlaceBid_NotActive(t *testing.T) {
	for _, status := range []string{"wait", "closed", "suspended"} {
		t.Run(status, func(t *testing.T) {
			bus := events.NewBus()
			changes := recordLotChanges(bus)
			lot := NewLot(LotRecord{ID: "L", Status: status, Price: 10, MinPrice: 10}, bus, 0)

			err := lot.PlaceBid(20)

			require.ErrorIs(t, err, ErrLotNotActive)
			assert.Equal(t, int64(10), lot.Price())
			assert.Equal(t, LotStatus(status), lot.Status())
			assert.Empty(t, *changes)
		})
	}
}

func TestPlaceBid_Scenario(t *testing.T) {
	bus := events.NewBus()
	changes := recordLotChanges(bus)
	lot := newActiveLot(t, bus)

	require.Error(t, lot.PlaceBid(90))
	assert.Equal(t, int64(100), lot.Price())

	require.NoError(t, lot.PlaceBid(150))
	assert.Equal(t, int64(150), lot.Price())
	assert.Equal(t, int64(150), lot.UserLastBid())
	assert.Equal(t, LotStatusActive, lot.Status())
	assert.Equal(t, []int64{70, 80, 90, 100, 150}, lot.History())

	require.NoError(t, lot.PlaceBid(600))
	assert.Equal(t, LotStatusClosed, lot.Status())
	assert.Equal(t, []int64{80, 90, 100, 150, 600}, lot.History())

	assert.Equal(t, []LotChanged{{ID: "L1", Price: 150}, {ID: "L1", Price: 600}}, *changes)

	require.ErrorIs(t, lot.PlaceBid(700), ErrLotNotActive)
	assert.Equal(t, LotStatusClosed, lot.Status())
}

func TestPlaceBid_ThresholdIsStrict(t *testing.T) {
	lot := newActiveLot(t, nil)

	require.NoError(t, lot.PlaceBid(500))
	assert.Equal(t, LotStatusActive, lot.Status())

	require.NoError(t, lot.PlaceBid(501))
	assert.Equal(t, LotStatusClosed, lot.Status())
}

func TestLot_HistoryLengthIsConstant(t *testing.T) {
	lot := newActiveLot(t, nil)

	for amount := int64(110); amount < 300; amount += 10 {
		require.NoError(t, lot.PlaceBid(amount))
		history := lot.History()
		assert.Len(t, history, 5)
		assert.Equal(t, amount, history[len(history)-1])
	}
}

func TestLot_WinningAndParticipation(t *testing.T) {
	bus := events.NewBus()
	lot := newActiveLot(t, bus)

	assert.False(t, lot.HasParticipated())
	assert.False(t, lot.IsWinningBid())

	require.NoError(t, lot.PlaceBid(200))
	assert.True(t, lot.HasParticipated())
	assert.True(t, lot.IsWinningBid())

	lot.ClearParticipation()
	assert.False(t, lot.HasParticipated())
	assert.Equal(t, int64(200), lot.Price())
}

func TestLot_NextBid(t *testing.T) {
	tests := []struct {
		price int64
		want  int64
	}{
		{price: 100, want: 110},
		{price: 105, want: 115},
		{price: 9, want: 9},
		{price: 1234, want: 1357},
	}

	for _, tt := range tests {
		lot := NewLot(LotRecord{Price: tt.price}, nil, 0)
		if got := lot.NextBid(); got != tt.want {
			t.Fatalf("NextBid() for price %d = %d, want %d", tt.price, got, tt.want)
		}
	}
}

func TestNewLot_PriceNotBelowMinimum(t *testing.T) {
	lot := NewLot(LotRecord{ID: "L", Price: 10, MinPrice: 40}, nil, 3)

	assert.Equal(t, int64(40), lot.Price())
	assert.Empty(t, lot.History())
}

func TestLot_ApplyPatch(t *testing.T) {
	lot := NewLot(LotRecord{ID: "L", Title: "old", Description: "short"}, nil, 0)

	description := "long\ndescription"
	lot.ApplyPatch(LotPatch{Description: &description, History: []int64{1, 2, 3}})

	assert.Equal(t, "old", lot.Title())
	assert.Equal(t, description, lot.Description())
	assert.Equal(t, []int64{1, 2, 3}, lot.History())
}

func TestLot_StatusStrings(t *testing.T) {
	now := time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		status        string
		price         int64
		statusInfo    string
		timeStatus    string
		auctionStatus string
	}{
		{
			name:          "active",
			status:        "active",
			price:         100,
			statusInfo:    "Открыто до 15 июня в 12:30",
			timeStatus:    "1д 2ч 30 мин 0 сек",
			auctionStatus: "До закрытия лота",
		},
		{
			name:          "wait",
			status:        "wait",
			price:         100,
			statusInfo:    "Откроется 15 июня в 12:30",
			timeStatus:    "1д 2ч 30 мин 0 сек",
			auctionStatus: "До начала аукциона",
		},
		{
			name:          "closed",
			status:        "closed",
			price:         600,
			statusInfo:    "Закрыто 15 июня в 12:30",
			timeStatus:    "Аукцион завершен",
			auctionStatus: "Продано за 600₽",
		},
		{
			name:          "unknown passes through",
			status:        "moderation",
			price:         100,
			statusInfo:    "moderation",
			timeStatus:    "1д 2ч 30 мин 0 сек",
			auctionStatus: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lot := NewLot(LotRecord{
				ID:       "L",
				Status:   tt.status,
				Datetime: "2026-06-15T12:30:00Z",
				Price:    tt.price,
			}, nil, 0)

			assert.Equal(t, tt.statusInfo, lot.StatusInfo())
			assert.Equal(t, tt.timeStatus, lot.TimeStatus(now))
			assert.Equal(t, tt.auctionStatus, lot.AuctionStatus())
		})
	}
}

func TestLot_TimeStatusPastDeadline(t *testing.T) {
	lot := NewLot(LotRecord{Status: "active", Datetime: "2026-01-01T00:00:00Z"}, nil, 0)

	assert.Equal(t, "0д 0ч 0 мин 0 сек", lot.TimeStatus(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
}
