package venues

import "context"

const defaultWeatherSummary = "Partly cloudy, 18°C. Good conditions for both indoor and outdoor activities."

// StaticWeather reports the same forecast for every location.
type StaticWeather struct {
	summary string
}

// NewStaticWeather returns a reporter with the given summary, or a default one when empty.
func NewStaticWeather(summary string) *StaticWeather {
	if summary == "" {
		summary = defaultWeatherSummary
	}
	return &StaticWeather{summary: summary}
}

func (w *StaticWeather) Summary(_ context.Context, _ string) string {
	return w.summary
}
