package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCity means the provider resolved the request but does not
	// know the city. ErrProviderUnavailable covers everything else:
	// network failure, provider 5xx, quota exhaustion.
	ErrUnknownCity         = errors.New("unknown city")
	ErrProviderUnavailable = errors.New("weather provider unavailable")
)

// WeatherSnapshot is the normalized view of one provider reading.
// Derived on demand, never persisted.
type WeatherSnapshot struct {
	City        string
	Temperature float64
	Condition   string
	Humidity    int
}

// Insight derives the templated weather text from a snapshot. Strict
// comparisons: exactly 30°C falls into the balanced branch.
func (s WeatherSnapshot) Insight(city string) string {
	var insight string
	switch {
	case s.Temperature > 30:
		insight = fmt.Sprintf("It's a warm and intense day in %s. Perfect for slowing down and letting the evening breeze do the magic.", city)
	case s.Temperature < 15:
		insight = fmt.Sprintf("A cool and quiet mood wraps around %s. Feels like a day for comfort and soft moments indoors.", city)
	default:
		insight = fmt.Sprintf("The weather in %s feels balanced and gentle. A calm day to move softly and breathe deeply.", city)
	}

	if strings.Contains(s.Condition, "rain") {
		insight += " A little rain adds romance to the air."
	}
	return insight
}
