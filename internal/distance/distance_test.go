package distance

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OMEGA178/faktury/internal/logging"
	"github.com/OMEGA178/faktury/internal/models"
)

var (
	warszawa = models.Location{City: "Warszawa", Address: "ul. Prosta 1"}
	gdansk   = models.Location{City: "Gdańsk"}
)

func TestEstimate_ParsesPlainNumber(t *testing.T) {
	var gotFrom, gotTo string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFrom = r.URL.Query().Get("from")
		gotTo = r.URL.Query().Get("to")
		_, _ = w.Write([]byte(" 412 \n"))
	}))
	defer ts.Close()

	e := NewHTTPEstimator(ts.URL, logging.Discard())
	km := e.Estimate(context.Background(), warszawa, gdansk)

	assert.Equal(t, 412, km)
	assert.Equal(t, "Warszawa, ul. Prosta 1", gotFrom)
	assert.Equal(t, "Gdańsk", gotTo)
}

func TestEstimate_FailuresDegradeToZero(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) },
		},
		{
			name:    "non-numeric body",
			handler: func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("about 400 km")) },
		},
		{
			name:    "negative distance",
			handler: func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("-5")) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			e := NewHTTPEstimator(ts.URL, logging.Discard())
			assert.Zero(t, e.Estimate(context.Background(), warszawa, gdansk))
		})
	}
}

func TestEstimate_FailureIsLogged(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	e := NewHTTPEstimator(ts.URL, log)
	assert.Zero(t, e.Estimate(context.Background(), warszawa, gdansk))
	assert.Contains(t, buf.String(), "distance")
}

func TestEstimate_UnreachableEndpoint(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	e := NewHTTPEstimator(ts.URL, logging.Discard())
	assert.Zero(t, e.Estimate(context.Background(), warszawa, gdansk))
}

func TestDisabled(t *testing.T) {
	assert.Zero(t, Disabled{}.Estimate(context.Background(), warszawa, gdansk))
}
