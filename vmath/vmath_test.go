package vmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		v, length, want float64
	}{
		{0, 100, 0},
		{5, 100, 5},
		{100, 100, 0},
		{105, 100, 5},
		{-5, 100, 95},
		{-100, 100, 0},
		{350, 100, 50},
		{42, 0, 0},
		{42, -1, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Wrap(tc.v, tc.length), "Wrap(%v, %v)", tc.v, tc.length)
	}
}

func TestWrapTinyNegativeStaysInRange(t *testing.T) {
	w := Wrap(-1e-18, 100)
	assert.GreaterOrEqual(t, w, 0.0)
	assert.Less(t, w, 100.0)
}

func TestWrappedDelta(t *testing.T) {
	assert.InDelta(t, 10.0, WrappedDelta(95, 5, 100), 1e-12)
	assert.InDelta(t, -10.0, WrappedDelta(5, 95, 100), 1e-12)
	assert.InDelta(t, 20.0, WrappedDelta(30, 50, 100), 1e-12)
}

func TestApproach(t *testing.T) {
	assert.Equal(t, 3.0, Approach(1, 10, 2))
	assert.Equal(t, 10.0, Approach(9, 10, 2))
	assert.Equal(t, 8.0, Approach(10, 1, 2))
	assert.Equal(t, 1.0, Approach(2, 1, 5))
	assert.Equal(t, 4.0, Approach(4, 4, 1))
	assert.Equal(t, 4.0, Approach(4, 9, -1), "negative rate must not move backwards")
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.3))
	assert.Equal(t, 1.0, Clamp01(7))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, 2, ClampInt(5, 0, 2))
	assert.Equal(t, -1.0, Lerp(0, -2, 0.5))
}

func TestSmoothDampConvergesWithoutOvershoot(t *testing.T) {
	var d Damper
	cur := 0.0
	for i := 0; i < 600; i++ {
		cur = d.Step(cur, 30, 0.1, 0, 1.0/60)
		if cur > 30 {
			t.Fatalf("overshoot at step %d: %f", i, cur)
		}
	}
	assert.InDelta(t, 30.0, cur, 1e-3)
}

func TestSmoothDampZeroDtIsNoop(t *testing.T) {
	v := 3.0
	out := SmoothDamp(5, 10, &v, 0.2, 0, 0)
	assert.Equal(t, 5.0, out)
	assert.Equal(t, 3.0, v)
}

func TestSmoothDampMaxSpeedLimitsStep(t *testing.T) {
	var fast, slow Damper
	a := fast.Step(0, 100, 0.5, 0, 0.1)
	b := slow.Step(0, 100, 0.5, 10, 0.1)
	assert.Greater(t, a, b)
}

func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
	r := NewFastRand(0)
	for i := 0; i < 1000; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %f", f)
		}
		n := r.Intn(3)
		if n < 0 || n >= 3 {
			t.Fatalf("Intn out of range: %d", n)
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	r := NewFastRand(7)
	s := []int{0, 1, 2, 3, 4}
	r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
	seen := make(map[int]bool)
	for _, v := range s {
		seen[v] = true
	}
	assert.Len(t, seen, 5)
}

func TestFlatten(t *testing.T) {
	v, ok := Flatten(mgl64.Vec3{3, 7, 4})
	assert.True(t, ok)
	assert.InDelta(t, 0.6, v.X(), 1e-12)
	assert.InDelta(t, 0.0, v.Y(), 1e-12)
	assert.InDelta(t, 0.8, v.Z(), 1e-12)

	_, ok = Flatten(mgl64.Vec3{0, 5, 0})
	assert.False(t, ok)
}

func TestTransform(t *testing.T) {
	m := mgl64.Translate3D(10, 0, 0)
	assert.Equal(t, mgl64.Vec3{11, 2, 3}, TransformPoint(m, mgl64.Vec3{1, 2, 3}))
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, TransformDir(m, mgl64.Vec3{1, 2, 3}))
	assert.Equal(t, WorldUp, NormalizeOr(mgl64.Vec3{}, WorldUp))
	assert.InDelta(t, 1.0, NormalizeOr(mgl64.Vec3{0, 0, 5}, WorldUp).Len(), 1e-12)
	assert.InDelta(t, math.Pi, Radians(180), 1e-12)
}
