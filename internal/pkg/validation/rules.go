package validation

import (
	"regexp"
	"slices"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern: something@something.something, no whitespace
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

	// Absolute coordinate ranges
	LatitudeMin, LatitudeMax   = -90.0, 90.0
	LongitudeMin, LongitudeMax = -180.0, 180.0
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// Bounds is a latitude/longitude rectangle
type Bounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// DefaultCampusBounds covers the UTS city campus
var DefaultCampusBounds = Bounds{
	MinLat: -33.89,
	MaxLat: -33.88,
	MinLng: 151.19,
	MaxLng: 151.21,
}

// Contains reports whether the point lies inside the rectangle, edges included
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// IsEmail reports whether value looks like an email address
func IsEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsBlank reports whether value is empty after trimming whitespace
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// InRange reports whether min <= value <= max
func InRange(value, min, max float64) bool {
	return value >= min && value <= max
}

// ValidLatitude reports whether lat is a valid absolute latitude
func ValidLatitude(lat float64) bool {
	return InRange(lat, LatitudeMin, LatitudeMax)
}

// ValidLongitude reports whether lng is a valid absolute longitude
func ValidLongitude(lng float64) bool {
	return InRange(lng, LongitudeMin, LongitudeMax)
}

// OneOf reports whether value is a member of allowed
func OneOf(value string, allowed []string) bool {
	return slices.Contains(allowed, value)
}
