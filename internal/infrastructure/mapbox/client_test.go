package mapbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"delivery-quote-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", "NZ,AU", "en", srv.Client())
}

func TestClient_DrivingDistance(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":15000},{"distance":17000}]}`))
	})

	meters, err := client.DrivingDistance(context.Background(),
		domain.Coordinate{Lat: -38.1077, Lng: 145.1694},
		domain.Coordinate{Lat: -38.2, Lng: 145.2},
	)

	require.NoError(t, err)
	assert.Equal(t, 15000.0, meters)
	assert.Equal(t, "/directions/v5/mapbox/driving/145.1694,-38.1077;145.2,-38.2", gotPath)
	assert.Equal(t, []string{"test-token"}, gotQuery["access_token"])
	assert.Equal(t, []string{"false"}, gotQuery["overview"])
}

func TestClient_DrivingDistance_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErrIs error
	}{
		{name: "empty routes", status: http.StatusOK, body: `{"code":"Ok","routes":[]}`, wantErrIs: domain.ErrNoRouteFound},
		{name: "missing routes", status: http.StatusOK, body: `{"code":"Ok"}`, wantErrIs: domain.ErrNoRouteFound},
		{name: "no route code", status: http.StatusOK, body: `{"code":"NoRoute","routes":[]}`, wantErrIs: domain.ErrNoRouteFound},
		{name: "no segment code", status: http.StatusUnprocessableEntity, body: `{"code":"NoSegment","message":"snap failed"}`, wantErrIs: domain.ErrNoRouteFound},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"Not Authorized - Invalid Token"}`},
		{name: "not json", status: http.StatusBadGateway, body: `<html>bad gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.DrivingDistance(context.Background(), domain.Coordinate{}, domain.Coordinate{Lat: 1, Lng: 1})

			require.Error(t, err)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
			} else {
				assert.NotErrorIs(t, err, domain.ErrNoRouteFound)
			}
		})
	}
}

func TestClient_Search(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/geocode/v6/forward", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"features":[
			{"geometry":{"coordinates":[174.7633,-36.8485]},"properties":{"full_address":"1 Queen Street, Auckland","name":"1 Queen Street"}},
			{"geometry":{"coordinates":[172.6362,-43.5321]},"properties":{"place_name":"Christchurch"}},
			{"geometry":{"coordinates":[]},"properties":{"name":"broken"}}
		]}`))
	})

	results, err := client.Search(context.Background(), "queen st")

	require.NoError(t, err)
	assert.Equal(t, []domain.Destination{
		{Lat: -36.8485, Lng: 174.7633, Address: "1 Queen Street, Auckland"},
		{Lat: -43.5321, Lng: 172.6362, Address: "Christchurch"},
	}, results)
	assert.Equal(t, []string{"queen st"}, gotQuery["q"])
	assert.Equal(t, []string{"nz,au"}, gotQuery["country"])
	assert.Equal(t, []string{"en"}, gotQuery["language"])
}

func TestClient_Search_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"rate limited"}`))
	})

	_, err := client.Search(context.Background(), "anything")
	assert.Error(t, err)
}

func TestClient_TransportErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewClient(srv.URL, "secret-token", "", "", nil)

	_, err := client.DrivingDistance(context.Background(), domain.Coordinate{}, domain.Coordinate{Lat: 1, Lng: 1})

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-token")
}
