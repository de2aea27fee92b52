package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != searchPath {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("query")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &gotQuery
}

func TestClient_SearchSongs(t *testing.T) {
	srv, gotQuery := newTestServer(t, http.StatusOK,
		`{"success":true,"data":{"total":1,"start":0,"results":[`+sampleSong+`]}}`)

	c := NewClient(srv.URL+"/", time.Second)
	tracks, err := c.SearchSongs(context.Background(), "tum hi ho")

	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "tum hi ho", *gotQuery)
	assert.Equal(t, "Tum Hi Ho", tracks[0].Name)
}

func TestClient_SearchSongs_NoResults(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty array", `{"success":true,"data":{"results":[]}}`},
		{"missing data", `{"success":false}`},
		{"malformed", `<html>oops</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, http.StatusOK, tt.body)

			tracks, err := NewClient(srv.URL, time.Second).SearchSongs(context.Background(), "q")

			require.NoError(t, err)
			assert.NotNil(t, tracks)
			assert.Empty(t, tracks)
		})
	}
}

func TestClient_SearchSongs_HTTPError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusInternalServerError, `{}`)

	_, err := NewClient(srv.URL, time.Second).SearchSongs(context.Background(), "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestClient_SearchSongs_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).SearchSongs(context.Background(), "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http request")
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", 0)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, 10*time.Second, c.httpClient.Timeout)
}
