package vmath

import (
	"math"
	"testing"
)

func TestV3OnCircle(t *testing.T) {
	tests := []struct {
		angle float64
		want  Vec3
	}{
		{0, V3(6, 2, 1)},
		{math.Pi / 2, V3(1, 2, 6)},
		{math.Pi, V3(-4, 2, 1)},
	}
	for _, tt := range tests {
		if got := V3OnCircle(V3(1, 2, 1), 5, tt.angle); !V3Near(got, tt.want, 1e-9) {
			t.Errorf("V3OnCircle(%f) = %v, want %v", tt.angle, got, tt.want)
		}
	}
}

func TestHorizontalDistIgnoresHeight(t *testing.T) {
	if d := HorizontalDist(V3(0, 100, 0), V3(3, -7, 4)); d != 5 {
		t.Errorf("HorizontalDist = %f", d)
	}
	if d := V3Dist(V3(0, 0, 0), V3(0, 3, 4)); d != 5 {
		t.Errorf("V3Dist = %f", d)
	}
}

func TestQLookRotation(t *testing.T) {
	tests := []struct {
		name    string
		forward Vec3
	}{
		{"x", V3(1, 0, 0)},
		{"down", V3(0, -1, 0)},
		{"up", V3(0, 1, 0)},
		{"diagonal", V3(-2, 3, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QLookRotation(tt.forward, V3Up())
			got := QRotate(q, V3Forward())
			if !V3Near(got, tt.forward.Normalize(), 1e-9) {
				t.Errorf("rotated +Z = %v, want %v", got, tt.forward.Normalize())
			}
		})
	}
	if q := QLookRotation(V3Zero(), V3Up()); q != QIdentity() {
		t.Errorf("zero forward = %v", q)
	}
}

func TestQMulOrder(t *testing.T) {
	yaw := QFromAngleAxisDegrees(90, V3Up())
	pitch := QFromAngleAxisDegrees(90, V3(1, 0, 0))

	// pitch first takes +Z to -Y, yaw leaves it there
	got := QRotate(QMul(yaw, pitch), V3Forward())
	if !V3Near(got, V3(0, -1, 0), 1e-9) {
		t.Errorf("yaw*pitch(+Z) = %v", got)
	}
	if yawDeg := QYawDegrees(yaw); math.Abs(yawDeg-90) > 1e-9 {
		t.Errorf("QYawDegrees = %f", yawDeg)
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#00FFFF")
	if err != nil || c != ColorCyan {
		t.Errorf("ParseHexColor = %v, %v", c, err)
	}
	if c.Hex() != "#00FFFF" {
		t.Errorf("Hex = %s", c.Hex())
	}
	for _, bad := range []string{"teal", "#12345", "#GGGGGG"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("%q accepted", bad)
		}
	}
}

func TestFastRandRange(t *testing.T) {
	r := NewFastRand(0)
	for i := 0; i < 1000; i++ {
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 = %f", f)
		}
		if n := r.Intn(7); n < 0 || n >= 7 {
			t.Fatalf("Intn = %d", n)
		}
	}
	a, b := NewFastRand(9), NewFastRand(9)
	if a.Next() != b.Next() {
		t.Error("same seed diverged")
	}
}
