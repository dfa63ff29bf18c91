package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	assert.NotNil(t, r.HTTPRequestsTotal)
	assert.NotNil(t, r.HTTPRequestDuration)
	assert.NotNil(t, r.HTTPRequestsInFlight)
	assert.NotNil(t, r.StorageOperationsTotal)
	assert.NotNil(t, r.StorageOperationDuration)
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("GET", "/api/v1/books", "200", 10*time.Millisecond)
	r.RecordHTTPRequest("GET", "/api/v1/books", "200", 20*time.Millisecond)
	r.RecordHTTPRequest("POST", "/api/v1/books", "201", 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/books", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/books", "201")))
}

func TestRecordStorageOperation(t *testing.T) {
	r := NewRegistry()
	r.RecordStorageOperation("create_book", "ok", time.Millisecond)
	r.RecordStorageOperation("create_book", "error", time.Millisecond)
	r.RecordStorageOperation("create_book", "ok", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.StorageOperationsTotal.WithLabelValues("create_book", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.StorageOperationsTotal.WithLabelValues("create_book", "error")))
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordStorageOperation("list_books", "ok", time.Millisecond)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), `library_storage_operations_total{operation="list_books",status="ok"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
