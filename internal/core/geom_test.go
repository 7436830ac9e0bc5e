package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        BoxAt(V(0, 0), V(2, 2)),
			b:        BoxAt(V(1, 1), V(2, 2)),
			expected: true,
		},
		{
			name:     "separated horizontally",
			a:        BoxAt(V(0, 0), V(2, 2)),
			b:        BoxAt(V(5, 0), V(2, 2)),
			expected: false,
		},
		{
			name:     "separated vertically",
			a:        BoxAt(V(0, 0), V(2, 2)),
			b:        BoxAt(V(0, 5), V(2, 2)),
			expected: false,
		},
		{
			name:     "touching edges (no overlap)",
			a:        BoxAt(V(0, 0), V(2, 2)),
			b:        BoxAt(V(2, 0), V(2, 2)),
			expected: false,
		},
		{
			name:     "contained box",
			a:        BoxAt(V(0, 0), V(10, 10)),
			b:        BoxAt(V(1, 1), V(1, 1)),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxContains(t *testing.T) {
	b := BoxAt(V(0, 0), V(4, 2))

	tests := []struct {
		name     string
		p        Vec2
		expected bool
	}{
		{"center", V(0, 0), true},
		{"inside", V(1.5, 0.5), true},
		{"on edge", V(2, 1), true},
		{"outside x", V(2.1, 0), false},
		{"outside y", V(0, -1.1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestSegmentHit(t *testing.T) {
	b := BoxAt(V(5, 0), V(2, 2)) // spans x 4..6, y -1..1

	tests := []struct {
		name       string
		from, to   Vec2
		wantOK     bool
		wantT      float64
		wantNormal Vec2
	}{
		{
			name:       "hits left face",
			from:       V(0, 0),
			to:         V(10, 0),
			wantOK:     true,
			wantT:      0.4,
			wantNormal: V(-1, 0),
		},
		{
			name:       "hits right face going left",
			from:       V(10, 0),
			to:         V(0, 0),
			wantOK:     true,
			wantT:      0.4,
			wantNormal: V(1, 0),
		},
		{
			name:       "hits top face going down",
			from:       V(5, 5),
			to:         V(5, -5),
			wantOK:     true,
			wantT:      0.4,
			wantNormal: V(0, 1),
		},
		{
			name:   "stops short",
			from:   V(0, 0),
			to:     V(3, 0),
			wantOK: false,
		},
		{
			name:   "passes above",
			from:   V(0, 2),
			to:     V(10, 2),
			wantOK: false,
		},
		{
			name:       "starts inside",
			from:       V(5, 0),
			to:         V(10, 0),
			wantOK:     true,
			wantT:      0,
			wantNormal: V(-1, 0),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotT, gotN, ok := b.SegmentHit(tc.from, tc.to)
			if ok != tc.wantOK {
				t.Fatalf("SegmentHit ok = %v, expected %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if !near(gotT, tc.wantT) {
				t.Errorf("t = %v, expected %v", gotT, tc.wantT)
			}
			if !near(gotN.X, tc.wantNormal.X) || !near(gotN.Y, tc.wantNormal.Y) {
				t.Errorf("normal = %v, expected %v", gotN, tc.wantNormal)
			}
		})
	}
}

func TestFromAngle(t *testing.T) {
	tests := []struct {
		deg  float64
		want Vec2
	}{
		{0, V(1, 0)},
		{90, V(0, 1)},
		{180, V(-1, 0)},
		{-90, V(0, -1)},
	}

	for _, tc := range tests {
		got := FromAngle(tc.deg)
		if !near(got.X, tc.want.X) || !near(got.Y, tc.want.Y) {
			t.Errorf("FromAngle(%v) = %v, expected %v", tc.deg, got, tc.want)
		}
	}
}

func TestVecOps(t *testing.T) {
	a, b := V(3, 4), V(1, -1)

	if got := a.Add(b); got != V(4, 3) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != V(2, 5) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Len(); !near(got, 5) {
		t.Errorf("Len = %v", got)
	}
	if got := a.Normalized(); !near(got.X, 0.6) || !near(got.Y, 0.8) {
		t.Errorf("Normalized = %v", got)
	}
	if got := (Vec2{}).Normalized(); got != (Vec2{}) {
		t.Errorf("zero Normalized = %v", got)
	}
	if got := V(0, 0).Lerp(V(10, 20), 0.25); got != V(2.5, 5) {
		t.Errorf("Lerp = %v", got)
	}
}

func TestPingPong(t *testing.T) {
	tests := []struct {
		t, length, want float64
	}{
		{0, 1, 0},
		{0.25, 1, 0.25},
		{1, 1, 1},
		{1.5, 1, 0.5},
		{2, 1, 0},
		{2.75, 1, 0.75},
		{-0.5, 1, 0.5},
		{3, 0, 0},
	}

	for _, tc := range tests {
		if got := PingPong(tc.t, tc.length); !near(got, tc.want) {
			t.Errorf("PingPong(%v, %v) = %v, expected %v", tc.t, tc.length, got, tc.want)
		}
	}
}

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		current, target, delta, want float64
	}{
		{0, 10, 3, 3},
		{10, 0, 3, 7},
		{9, 10, 3, 10},
		{5, 5, 1, 5},
	}

	for _, tc := range tests {
		if got := MoveTowards(tc.current, tc.target, tc.delta); !near(got, tc.want) {
			t.Errorf("MoveTowards(%v, %v, %v) = %v, expected %v", tc.current, tc.target, tc.delta, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		val      int
		min, max int
		expected int
	}{
		{"within range", 5, 0, 10, 5},
		{"below min", -5, 0, 10, 0},
		{"above max", 15, 0, 10, 10},
		{"at min", 0, 0, 10, 0},
		{"at max", 10, 0, 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
				t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(2.5, 0, 1); got != 1 {
		t.Errorf("ClampF above = %v", got)
	}
	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF below = %v", got)
	}
	if got := ClampF(0.3, 0, 1); got != 0.3 {
		t.Errorf("ClampF within = %v", got)
	}
}
