package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_RoundTripAndRequestID(t *testing.T) {
	var gotID, gotCT string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(RequestIDHeader)
		gotCT = r.Header.Get("Content-Type")

		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"echo": in["name"]})
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL+"/", 0)
	require.NoError(t, err)

	var out struct {
		Echo string `json:"echo"`
	}
	require.NoError(t, c.DoJSON(context.Background(), http.MethodPost, "pets", nil, map[string]any{"name": "Buddy"}, &out))

	assert.Equal(t, "Buddy", out.Echo)
	assert.Equal(t, "application/json", gotCT)
	_, err = uuid.Parse(gotID)
	assert.NoError(t, err, "request id should be a uuid, got %q", gotID)
}

func TestDoJSON_ExplicitRequestIDWins(t *testing.T) {
	var gotID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(RequestIDHeader)
	}))
	defer ts.Close()

	c := New(0)
	require.NoError(t, c.DoJSON(context.Background(), http.MethodGet, ts.URL, map[string]string{RequestIDHeader: "mine"}, nil, nil))
	assert.Equal(t, "mine", gotID)
}

func TestDoJSON_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"pet not found"}` + "\n"))
	}))
	defer ts.Close()

	c := New(0)
	err := c.DoJSON(context.Background(), http.MethodGet, ts.URL+"/pets/9", nil, nil, nil)

	status, ok := StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.NotEmpty(t, he.RequestID)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, he.DecodeBody(&body))
	assert.Equal(t, "pet not found", body.Error)
}

func TestNewWithBaseURL_Invalid(t *testing.T) {
	_, err := NewWithBaseURL("localhost:8080", 0)
	assert.Error(t, err)

	c := New(0)
	assert.Error(t, c.DoJSON(context.Background(), http.MethodGet, "/pets", nil, nil, nil))
}
