package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_LabelsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := Middleware(mux)

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("404", http.MethodGet, "GET /orders/{id}"))

	for _, id := range []string{"a", "b", "c"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("404", http.MethodGet, "GET /orders/{id}"))
	assert.InDelta(t, 3, after-before, 0.001)
	assert.InDelta(t, 0, testutil.ToFloat64(httpRequestsInFlight), 0.001)
}

func TestRecordCheckout(t *testing.T) {
	before := testutil.ToFloat64(checkoutAttemptsTotal.WithLabelValues(OutcomeGatewayFailure))

	RecordCheckout(OutcomeGatewayFailure, 50*time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(checkoutAttemptsTotal.WithLabelValues(OutcomeGatewayFailure))-before, 0.001)
}

func TestRecordReconciled(t *testing.T) {
	before := testutil.ToFloat64(reconciledOrdersTotal.WithLabelValues("failed"))

	RecordReconciled("failed")

	assert.InDelta(t, 1, testutil.ToFloat64(reconciledOrdersTotal.WithLabelValues("failed"))-before, 0.001)
}
