package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmeshcher/auction-storefront/internal/events"
)

func TestObserve_CountsEmissions(t *testing.T) {
	bus := events.NewBus()

	baseLot := testutil.ToFloat64(eventsTotal.WithLabelValues("lot-changed"))
	baseErr := testutil.ToFloat64(eventsTotal.WithLabelValues("order.phone:error"))

	sub := Observe(bus)

	bus.Emit("lot-changed", nil)
	bus.Emit("lot-changed", nil)
	bus.Emit("order.phone:error", nil)

	if got := testutil.ToFloat64(eventsTotal.WithLabelValues("lot-changed")); got != baseLot+2 {
		t.Fatalf("lot-changed = %v, want %v", got, baseLot+2)
	}
	if got := testutil.ToFloat64(eventsTotal.WithLabelValues("order.phone:error")); got != baseErr+1 {
		t.Fatalf("order.phone:error = %v, want %v", got, baseErr+1)
	}

	bus.Unsubscribe(sub)
	bus.Emit("lot-changed", nil)

	if got := testutil.ToFloat64(eventsTotal.WithLabelValues("lot-changed")); got != baseLot+2 {
		t.Fatalf("lot-changed after unsubscribe = %v, want %v", got, baseLot+2)
	}
}
