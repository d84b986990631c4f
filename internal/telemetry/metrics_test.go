package telemetry

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestStatusClass(t *testing.T) {
	require.Equal(t, "2xx", statusClass(http.StatusCreated))
	require.Equal(t, "3xx", statusClass(http.StatusNotModified))
	require.Equal(t, "4xx", statusClass(http.StatusNotFound))
	require.Equal(t, "5xx", statusClass(http.StatusServiceUnavailable))
}

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(requestEvents.WithLabelValues(EventAssigned))
	RecordRequestEvent(EventAssigned)
	require.Equal(t, before+1, testutil.ToFloat64(requestEvents.WithLabelValues(EventAssigned)))

	failed := testutil.ToFloat64(notifications.WithLabelValues("sms", "error"))
	RecordNotification("sms", errors.New("boom"))
	require.Equal(t, failed+1, testutil.ToFloat64(notifications.WithLabelValues("sms", "error")))

	hits := testutil.ToFloat64(httpRequests.WithLabelValues("/buildings", http.MethodGet, "2xx"))
	ObserveHTTP("/buildings", http.MethodGet, http.StatusOK, 3*time.Millisecond)
	require.Equal(t, hits+1, testutil.ToFloat64(httpRequests.WithLabelValues("/buildings", http.MethodGet, "2xx")))
}
