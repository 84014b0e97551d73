package geo

import (
	"math"
	"testing"
)

func TestDistanceKmZeroForSamePoint(t *testing.T) {
	if d := DistanceKm(28.6139, 77.2090, 28.6139, 77.2090); d != 0 {
		t.Fatalf("expected zero distance for identical points, got %v", d)
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	a := DistanceKm(28.6139, 77.2090, 19.0760, 72.8777)
	b := DistanceKm(19.0760, 72.8777, 28.6139, 77.2090)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance is not symmetric: %v vs %v", a, b)
	}
}

func TestDistanceKmDelhiToMumbai(t *testing.T) {
	// Great-circle distance Delhi to Mumbai is about 1150 km.
	d := DistanceKm(28.6139, 77.2090, 19.0760, 72.8777)
	if d < 1130 || d > 1180 {
		t.Fatalf("Delhi-Mumbai distance out of range: %v", d)
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	// Northward offsets are pure latitude moves, where the flat-earth
	// approximation is near-exact.
	lat, lng := Offset(28.6139, 77.2090, 0, 50)
	d := DistanceKm(28.6139, 77.2090, lat, lng)
	if math.Abs(d-50) > 1 {
		t.Fatalf("offset by 50km produced a point %v km away", d)
	}
}

func TestOffsetBearings(t *testing.T) {
	north, _ := Offset(20, 75, 0, 10)
	if north <= 20 {
		t.Fatalf("bearing 0 should move north, lat went %v -> %v", 20.0, north)
	}
	_, east := Offset(20, 75, 90, 10)
	if east <= 75 {
		t.Fatalf("bearing 90 should move east, lng went %v -> %v", 75.0, east)
	}
}

func TestRoundKm(t *testing.T) {
	if got := RoundKm(12.3456); got != 12.3 {
		t.Fatalf("RoundKm(12.3456) = %v, want 12.3", got)
	}
	if got := RoundKm(12.37); got != 12.4 {
		t.Fatalf("RoundKm(12.37) = %v, want 12.4", got)
	}
}
