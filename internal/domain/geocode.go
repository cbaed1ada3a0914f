package domain

import (
	"context"
	"log/slog"
)

// EnrichWithGeocoding resolves the location of a weather command. Other
// command kinds, a nil geocoder and the "current" placeholder pass through
// untouched. Geocoding failures are logged and recorded in GeoSource; they
// never fail the command.
func EnrichWithGeocoding(ctx context.Context, ev CommandEvent, geocoder Geocoder, logger *slog.Logger) CommandEvent {
	if geocoder == nil || ev.Kind != CommandWeather || ev.Location == "" || ev.Location == fallbackLocation {
		return ev
	}

	result, err := geocoder.ForwardGeocode(ctx, ev.Location)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"command_id", ev.ID,
			"location", ev.Location,
			"error", err,
		)
		ev.GeoSource = "failed"
		return ev
	}

	if result.Lat == 0 && result.Lon == 0 {
		ev.GeoSource = "original"
		return ev
	}

	ev.Geo = &Geo{Lat: result.Lat, Lon: result.Lon}
	ev.FormattedAddress = result.FormattedAddress
	ev.GeoConfidence = result.Confidence
	ev.GeoSource = "forward"
	return ev
}
