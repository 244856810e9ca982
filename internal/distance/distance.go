// Package distance estimates road distances between invoice
// locations. The estimate feeds the per-kilometre economics. A
// failure of any kind is reported as 0 km, which downstream treats
// as "distance unknown" rather than a zero-length trip.
package distance

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/OMEGA178/faktury/internal/logging"
	"github.com/OMEGA178/faktury/internal/models"
)

// Estimator resolves the road distance between two locations in
// kilometres, 0 when it cannot.
type Estimator interface {
	Estimate(ctx context.Context, from, to models.Location) int
}

// Disabled always reports 0. Used when no estimator endpoint is
// configured.
type Disabled struct{}

func (Disabled) Estimate(context.Context, models.Location, models.Location) int { return 0 }

// HTTPEstimator queries an external routing endpoint. The endpoint
// receives the two places as query parameters and must answer with a
// plain number of kilometres in the response body.
type HTTPEstimator struct {
	endpoint string
	client   *http.Client
	log      logging.Logger
}

// NewHTTPEstimator returns an estimator against endpoint.
func NewHTTPEstimator(endpoint string, log logging.Logger) *HTTPEstimator {
	return &HTTPEstimator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

// Estimate asks the endpoint for the road distance. Any transport,
// status or parse failure degrades to 0.
func (e *HTTPEstimator) Estimate(ctx context.Context, from, to models.Location) int {
	q := url.Values{}
	q.Set("from", placeString(from))
	q.Set("to", placeString(to))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		e.log.Warn(ctx, "distance request could not be built", "error", err)
		return 0
	}

	resp, err := e.client.Do(req)
	if err != nil {
		e.log.Warn(ctx, "distance request failed", "error", err)
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.log.Warn(ctx, "distance request rejected", "status", resp.Status)
		return 0
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		e.log.Warn(ctx, "distance response unreadable", "error", err)
		return 0
	}

	km, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil || km < 0 {
		e.log.Warn(ctx, "distance response is not a distance", "body", strings.TrimSpace(string(body)))
		return 0
	}
	return km
}

func placeString(l models.Location) string {
	if l.Address == "" {
		return l.City
	}
	return fmt.Sprintf("%s, %s", l.City, l.Address)
}
