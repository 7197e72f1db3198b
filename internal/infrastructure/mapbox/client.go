package mapbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"delivery-quote-backend/internal/domain"

	"github.com/goccy/go-json"
)

// Client talks to the Mapbox Directions and Geocoding APIs.
type Client struct {
	baseURL   string
	token     string
	countries string
	language  string
	http      *http.Client
}

func NewClient(baseURL, token, countries, language string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		token:     token,
		countries: countries,
		language:  language,
		http:      httpClient,
	}
}

type directionsResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
	} `json:"routes"`
}

// Directions codes meaning the request was valid but nothing connects the points.
var noRouteCodes = map[string]bool{
	"NoRoute":   true,
	"NoSegment": true,
}

// DrivingDistance returns the distance in meters of the first driving route.
func (c *Client) DrivingDistance(ctx context.Context, from, to domain.Coordinate) (float64, error) {
	endpoint := fmt.Sprintf("%s/directions/v5/mapbox/driving/%s;%s",
		c.baseURL, formatLngLat(from), formatLngLat(to))

	q := url.Values{}
	q.Set("access_token", c.token)
	q.Set("overview", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, redact(err)
	}
	defer resp.Body.Close()

	var body directionsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return 0, fmt.Errorf("directions endpoint %d: invalid response: %w", resp.StatusCode, err)
	}
	if noRouteCodes[body.Code] {
		return 0, domain.ErrNoRouteFound
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("directions endpoint %d: %s", resp.StatusCode, body.Message)
	}
	if len(body.Routes) == 0 {
		return 0, domain.ErrNoRouteFound
	}
	return body.Routes[0].Distance, nil
}

type searchResponse struct {
	Message  string `json:"message"`
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			FullAddress string `json:"full_address"`
			PlaceName   string `json:"place_name"`
			Name        string `json:"name"`
		} `json:"properties"`
	} `json:"features"`
}

// Search resolves free text to candidate destinations, best match first.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Destination, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("access_token", c.token)
	if c.countries != "" {
		q.Set("country", strings.ToLower(c.countries))
	}
	if c.language != "" {
		q.Set("language", c.language)
	}

	endpoint := fmt.Sprintf("%s/search/geocode/v6/forward?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, redact(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("geocoding endpoint %d: %s", resp.StatusCode, string(b))
	}

	var body searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return nil, fmt.Errorf("geocoding endpoint: invalid response: %w", err)
	}

	results := make([]domain.Destination, 0, len(body.Features))
	for _, f := range body.Features {
		// GeoJSON order: [lng, lat]
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		results = append(results, domain.Destination{
			Lng:     f.Geometry.Coordinates[0],
			Lat:     f.Geometry.Coordinates[1],
			Address: firstNonEmpty(f.Properties.FullAddress, f.Properties.PlaceName, f.Properties.Name),
		})
	}
	return results, nil
}

// redact strips the query string, and with it the access token, from transport
// errors before they reach logs or API responses.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if u, perr := url.Parse(urlErr.URL); perr == nil {
			u.RawQuery = ""
			urlErr.URL = u.String()
		}
	}
	return err
}

func formatLngLat(c domain.Coordinate) string {
	return strconv.FormatFloat(c.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
