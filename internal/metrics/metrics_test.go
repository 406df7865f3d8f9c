package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(get().requests.WithLabelValues("get_balance", "ok"))
	ObserveRequest("get_balance", "ok", 20*time.Millisecond)
	after := testutil.ToFloat64(get().requests.WithLabelValues("get_balance", "ok"))
	if after-before != 1 {
		t.Fatalf("request counter delta = %v", after-before)
	}
}

func TestObserveChainCall(t *testing.T) {
	ObserveChainCall("eth_call", "ok")
	ObserveChainCall("eth_call", "unavailable")
	ObserveChainRetry("eth_call")

	if got := testutil.ToFloat64(get().chainCalls.WithLabelValues("eth_call", "unavailable")); got < 1 {
		t.Fatalf("chain call counter = %v", got)
	}
	if got := testutil.ToFloat64(get().chainRetries.WithLabelValues("eth_call")); got < 1 {
		t.Fatalf("retry counter = %v", got)
	}
}
