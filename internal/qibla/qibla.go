// Package qibla computes the great-circle bearing and distance to the Kaaba.
package qibla

import "math"

// Reference point of the Kaaba in decimal degrees.
const (
	KaabaLat = 21.422487
	KaabaLng = 39.826206
)

// EarthRadiusKm is the mean radius used for haversine distance.
const EarthRadiusKm = 6371.0

// GeoPoint is a latitude/longitude pair in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Kaaba is the fixed reference point.
var Kaaba = GeoPoint{Lat: KaabaLat, Lng: KaabaLng}

// BearingResult holds the initial bearing in [0, 360) and distance in km.
type BearingResult struct {
	BearingDeg float64 `json:"bearing_deg"`
	DistanceKm float64 `json:"distance_km"`
}

// BearingAndDistance returns the forward azimuth and haversine distance from
// observer to the Kaaba. Inputs are not validated; NaN propagates.
func BearingAndDistance(observer GeoPoint) BearingResult {
	phi1 := toRadians(observer.Lat)
	phi2 := toRadians(KaabaLat)
	dPhi := toRadians(KaabaLat - observer.Lat)
	dLambda := toRadians(KaabaLng - observer.Lng)

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)
	bearing := math.Mod(toDegrees(math.Atan2(y, x))+360.0, 360.0)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return BearingResult{BearingDeg: bearing, DistanceKm: EarthRadiusKm * c}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
