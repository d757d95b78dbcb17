package pathutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantID  int64
		wantErr error
	}{
		{name: "valid", raw: "123", wantID: 123},
		{name: "surrounding space", raw: " 7 ", wantID: 7},
		{name: "not a number", raw: "abc", wantErr: ErrInvalidID},
		{name: "zero", raw: "0", wantErr: ErrInvalidID},
		{name: "negative", raw: "-5", wantErr: ErrInvalidID},
		{name: "empty", raw: "", wantErr: ErrInvalidID},
		{name: "overflow", raw: "99999999999999999999", wantErr: ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseID(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestPathID(t *testing.T) {
	var got int64
	var gotErr error
	mux := http.NewServeMux()
	mux.HandleFunc("GET /summaries/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = PathID(r, "id")
	})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/summaries/42", nil))
	require.NoError(t, gotErr)
	assert.Equal(t, int64(42), got)

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/summaries/x", nil))
	assert.ErrorIs(t, gotErr, ErrInvalidID)
}
