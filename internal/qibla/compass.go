package qibla

import "math"

var cardinals = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

var arrows = []string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}

// Cardinal returns the 16-point compass label for a bearing.
func Cardinal(bearing float64) string {
	if math.IsNaN(bearing) || math.IsInf(bearing, 0) {
		return "?"
	}
	idx := int(math.Floor(normalize(bearing)/22.5+0.5)) % len(cardinals)
	return cardinals[idx]
}

// Relative returns how far to turn clockwise from heading to face bearing.
func Relative(bearing, heading float64) float64 {
	return normalize(bearing - heading)
}

// Arrow returns an 8-way arrow pointing toward an angle relative to "up".
func Arrow(relative float64) string {
	if math.IsNaN(relative) || math.IsInf(relative, 0) {
		return "·"
	}
	idx := int(math.Floor(normalize(relative)/45+0.5)) % len(arrows)
	return arrows[idx]
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
