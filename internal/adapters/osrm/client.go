package osrm

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"travel-fee-service/internal/domain"
	"travel-fee-service/internal/platform/httpclient"
	"travel-fee-service/internal/platform/obs"
	"travel-fee-service/internal/ports"
)

const DefaultBaseURL = "http://router.project-osrm.org"

// Client computes driving routes against an OSRM server. Errors from this
// client are intentionally generic: the estimator treats any failure as a
// signal to fall back to the geometric estimate.
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

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// DrivingRoute returns the one-way driving route between two coordinates.
func (c *Client) DrivingRoute(ctx context.Context, origin, destination domain.Coordinates) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, c.logger, "osrm.DrivingRoute")(&err)

	url := fmt.Sprintf(
		"%s/route/v1/driving/%s,%s;%s,%s?overview=false&alternatives=false&steps=false",
		c.baseURL,
		coord(origin.Lon), coord(origin.Lat),
		coord(destination.Lon), coord(destination.Lat),
	)

	var decoded routeResponse
	if err := c.http.GetJSON(ctx, url, nil, &decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("osrm: route request: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return ports.RouteResult{}, fmt.Errorf("osrm: no route (code %q)", decoded.Code)
	}

	route := decoded.Routes[0]
	return ports.RouteResult{
		DistanceMeters:  route.Distance,
		DurationSeconds: route.Duration,
	}, nil
}

// Ping checks router reachability with a fixed short route.
func (c *Client) Ping(ctx context.Context) error {
	var decoded routeResponse
	url := c.baseURL + "/route/v1/driving/-49.0708,-22.3155;-46.6388,-23.5489?overview=false"
	return c.http.GetJSON(ctx, url, nil, &decoded)
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
