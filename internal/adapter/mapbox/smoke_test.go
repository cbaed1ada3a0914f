//go:build mapbox

package mapbox

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/daily-brief-service/internal/observability"
)

// These tests hit the real Mapbox API and require a valid MAPBOX_TOKEN env var.
// Run with: go test -tags=mapbox ./internal/adapter/mapbox/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	token := os.Getenv("MAPBOX_TOKEN")
	if token == "" {
		t.Fatal("MAPBOX_TOKEN must be set to run smoke tests")
	}
	return newClient(token, defaultBaseURL, &http.Client{Timeout: 10 * time.Second},
		slog.New(slog.DiscardHandler), observability.NewMetricsForTesting())
}

func TestSmoke_ForwardGeocode(t *testing.T) {
	c := smokeClient(t)

	result, err := c.ForwardGeocode(context.Background(), "Bratislava")
	require.NoError(t, err)

	assert.InDelta(t, 48.15, result.Lat, 0.2, "lat should be near Bratislava")
	assert.InDelta(t, 17.11, result.Lon, 0.2, "lon should be near Bratislava")
	assert.Contains(t, result.FormattedAddress, "Bratislava")
	assert.Greater(t, result.Confidence, 0.5)
}

func TestSmoke_ForwardGeocode_Diacritics(t *testing.T) {
	result, err := smokeClient(t).ForwardGeocode(context.Background(), "Košice")
	require.NoError(t, err)
	assert.Contains(t, result.FormattedAddress, "Košice")
}

func TestSmoke_CachedGeocoder(t *testing.T) {
	cached, err := NewCachedGeocoder(smokeClient(t), 10, observability.NewMetricsForTesting())
	require.NoError(t, err)

	r1, err := cached.ForwardGeocode(context.Background(), "Madrid")
	require.NoError(t, err)
	assert.Contains(t, r1.FormattedAddress, "Madrid")

	r2, err := cached.ForwardGeocode(context.Background(), "madrid")
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
