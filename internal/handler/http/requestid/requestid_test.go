package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	assert.Empty(t, FromContext(context.Background()))

	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", FromContext(ctx))

	ctx = context.WithValue(context.Background(), ctxKey{}, 42)
	assert.Empty(t, FromContext(ctx), "non-string values are ignored")
}

func capture(t *testing.T, header string) (ctxID string, rec *httptest.ResponseRecorder) {
	t.Helper()
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/summaries", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return ctxID, rec
}

func TestMiddleware_ReusesIncomingID(t *testing.T) {
	id, rec := capture(t, "existing-request-id-456")

	assert.Equal(t, "existing-request-id-456", id)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestMiddleware_GeneratesID(t *testing.T) {
	id, rec := capture(t, "")

	parsed, err := uuid.Parse(id)
	assert.NoError(t, err, "generated ID should be a valid UUID")
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestMiddleware_ReplacesMalformedID(t *testing.T) {
	for _, bad := range []string{
		"has space",
		"line\nbreak",
		strings.Repeat("x", maxIncomingLength+1),
		"café",
	} {
		id, _ := capture(t, bad)
		assert.NotEqual(t, bad, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	}
}

func TestMiddleware_UniquePerRequest(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, _ := capture(t, "")
		assert.False(t, seen[id])
		seen[id] = true
	}
}
