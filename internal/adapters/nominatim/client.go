package nominatim

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"travel-fee-service/internal/domain"
	"travel-fee-service/internal/platform/httpclient"
	"travel-fee-service/internal/platform/obs"
	"travel-fee-service/internal/ports"
)

const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Nominatim usage policy requires an identifying User-Agent.
const userAgent = "travel-fee-service/1.0"

// Client geocodes addresses against Nominatim (OpenStreetMap).
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  *zap.Logger
}

func New(baseURL string, hc *httpclient.Client, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Municipality string `json:"municipality"`
		Village      string `json:"village"`
		County       string `json:"county"`
		State        string `json:"state"`
		Postcode     string `json:"postcode"`
	} `json:"address"`
}

// Geocode resolves a CEP address to coordinates. A street-level query is
// tried first when the address carries a logradouro; on an empty result the
// lookup retries with city and UF only.
func (c *Client) Geocode(ctx context.Context, addr ports.Address) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, c.logger, "nominatim.Geocode")(&err)

	query := cityQuery(addr)
	if addr.Logradouro != "" {
		query = fmt.Sprintf("%s, %s, %s, %s, Brazil", addr.Logradouro, addr.Bairro, addr.Localidade, addr.UF)
	}

	results, err := c.search(ctx, query, false)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if len(results) == 0 && addr.Logradouro != "" {
		c.logger.Info("no street-level match, retrying with city only",
			zap.String("cep", addr.CEP))
		results, err = c.search(ctx, cityQuery(addr), false)
		if err != nil {
			return domain.Coordinates{}, err
		}
	}

	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("nominatim: %q: %w", query, domain.ErrGeocodeNotFound)
	}

	return parseCoordinates(results[0])
}

// SearchFreeForm resolves a free-text address. ", Brazil" is appended when
// the text does not already name the country, and address details are
// requested so the caller gets city/UF/CEP back.
func (c *Client) SearchFreeForm(ctx context.Context, text string) (_ ports.Place, err error) {
	defer obs.Time(ctx, c.logger, "nominatim.SearchFreeForm")(&err)

	query := strings.TrimSpace(text)
	lower := strings.ToLower(query)
	if !strings.Contains(lower, "brazil") && !strings.Contains(lower, "brasil") {
		query += ", Brazil"
	}

	results, err := c.search(ctx, query, true)
	if err != nil {
		return ports.Place{}, err
	}
	if len(results) == 0 {
		return ports.Place{}, fmt.Errorf("nominatim: %q: %w", text, domain.ErrGeocodeNotFound)
	}

	r := results[0]
	coords, err := parseCoordinates(r)
	if err != nil {
		return ports.Place{}, err
	}

	display := r.DisplayName
	if display == "" {
		display = text
	}

	return ports.Place{
		DisplayName: display,
		Cidade:      firstNonEmpty(r.Address.City, r.Address.Town, r.Address.Municipality, r.Address.Village, r.Address.County),
		UF:          r.Address.State,
		CEP:         r.Address.Postcode,
		Coordinates: coords,
	}, nil
}

// Ping checks geocoder reachability.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.search(ctx, "São Paulo, Brazil", false)
	return err
}

func (c *Client) search(ctx context.Context, query string, addressDetails bool) ([]searchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("countrycodes", "br")
	if addressDetails {
		params.Set("addressdetails", "1")
	}

	header := http.Header{}
	header.Set("User-Agent", userAgent)

	var results []searchResult
	endpoint := c.baseURL + "/search?" + params.Encode()
	if err := c.http.GetJSON(ctx, endpoint, header, &results); err != nil {
		c.logger.Warn("nominatim search failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("nominatim: search %q: %w", query, domain.ErrUpstreamUnavailable)
	}

	return results, nil
}

func cityQuery(addr ports.Address) string {
	return fmt.Sprintf("%s, %s, Brazil", addr.Localidade, addr.UF)
}

// Nominatim returns coordinates as strings.
func parseCoordinates(r searchResult) (domain.Coordinates, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim: unparsable latitude %q: %w", r.Lat, domain.ErrGeocodeNotFound)
	}

	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim: unparsable longitude %q: %w", r.Lon, domain.ErrGeocodeNotFound)
	}

	c := domain.Coordinates{Lat: lat, Lon: lon}
	if !c.Valid() {
		return domain.Coordinates{}, fmt.Errorf("nominatim: coordinates out of range (%v, %v): %w", lat, lon, domain.ErrGeocodeNotFound)
	}

	return c, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
