package qibla

import (
	"math"
	"testing"
)

func TestBearingAndDistanceAtKaaba(t *testing.T) {
	res := BearingAndDistance(Kaaba)
	if res.DistanceKm > 1e-6 {
		t.Fatalf("expected ~0 km, got %f", res.DistanceKm)
	}
}

func TestBearingAndDistanceDueSouth(t *testing.T) {
	res := BearingAndDistance(GeoPoint{Lat: KaabaLat - 1, Lng: KaabaLng})
	if !(res.BearingDeg < 1e-6 || res.BearingDeg > 360-1e-6) {
		t.Fatalf("expected bearing ~0, got %f", res.BearingDeg)
	}
	want := EarthRadiusKm * math.Pi / 180
	if math.Abs(res.DistanceKm-want) > 1e-6 {
		t.Fatalf("expected %.6f km, got %.6f", want, res.DistanceKm)
	}
	if math.Abs(res.DistanceKm-111.19) > 0.1 {
		t.Fatalf("expected ~111 km, got %f", res.DistanceKm)
	}
}

func TestBearingAndDistanceKnownCities(t *testing.T) {
	cases := []struct {
		name    string
		point   GeoPoint
		bearing float64
		km      float64
	}{
		{"cairo", GeoPoint{Lat: 30.0444, Lng: 31.2357}, 136, 1280},
		{"london", GeoPoint{Lat: 51.5074, Lng: -0.1278}, 119, 4790},
		{"jakarta", GeoPoint{Lat: -6.2088, Lng: 106.8456}, 295, 7920},
	}
	for _, tc := range cases {
		res := BearingAndDistance(tc.point)
		if math.Abs(res.BearingDeg-tc.bearing) > 2 {
			t.Fatalf("%s: bearing %f, want ~%f", tc.name, res.BearingDeg, tc.bearing)
		}
		if math.Abs(res.DistanceKm-tc.km) > 40 {
			t.Fatalf("%s: distance %f, want ~%f", tc.name, res.DistanceKm, tc.km)
		}
		if res.BearingDeg < 0 || res.BearingDeg >= 360 {
			t.Fatalf("%s: bearing out of range: %f", tc.name, res.BearingDeg)
		}
	}
}

func TestBearingAndDistanceNaN(t *testing.T) {
	res := BearingAndDistance(GeoPoint{Lat: math.NaN(), Lng: 10})
	if !math.IsNaN(res.BearingDeg) || !math.IsNaN(res.DistanceKm) {
		t.Fatalf("expected NaN propagation, got %+v", res)
	}
}

func TestBearingAndDistanceIdempotent(t *testing.T) {
	p := GeoPoint{Lat: 40.7128, Lng: -74.0060}
	if BearingAndDistance(p) != BearingAndDistance(p) {
		t.Fatalf("expected identical results")
	}
}

func TestCardinalAndArrow(t *testing.T) {
	if got := Cardinal(0); got != "N" {
		t.Fatalf("expected N, got %s", got)
	}
	if got := Cardinal(359); got != "N" {
		t.Fatalf("expected N for 359, got %s", got)
	}
	if got := Cardinal(136); got != "SE" {
		t.Fatalf("expected SE, got %s", got)
	}
	if got := Cardinal(math.NaN()); got != "?" {
		t.Fatalf("expected ? for NaN, got %s", got)
	}
	if got := Relative(10, 350); got != 20 {
		t.Fatalf("expected 20, got %f", got)
	}
	if got := Arrow(Relative(90, 0)); got != "→" {
		t.Fatalf("expected right arrow, got %s", got)
	}
}
