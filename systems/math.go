package systems

import (
	"math"
	"math/rand"
)

const twoPi = 2 * math.Pi

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	return clampFloat(v, 0, 1)
}

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// length returns the magnitude of a vector.
func length(x, y float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y)))
}

// normalize returns the unit vector, or zero for a (near) zero vector.
func normalize(x, y float32) (float32, float32) {
	l := length(x, y)
	if l < 1e-6 {
		return 0, 0
	}
	return x / l, y / l
}

// clampLength scales (x, y) down so its magnitude is at most maxLen.
func clampLength(x, y, maxLen float32) (float32, float32) {
	lsq := x*x + y*y
	if lsq > maxLen*maxLen {
		s := maxLen / float32(math.Sqrt(float64(lsq)))
		return x * s, y * s
	}
	return x, y
}

// randomHeading returns a unit vector with a uniform random angle.
func randomHeading(rng *rand.Rand) (float32, float32) {
	a := rng.Float64() * twoPi
	return float32(math.Cos(a)), float32(math.Sin(a))
}

// smoothstep is the cubic Hermite ramp between edge0 and edge1.
func smoothstep(edge0, edge1, x float32) float32 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}
