package mode

import "time"

// Tint is an RGB multiplier applied to cat colors.
type Tint [3]float32

var (
	tintNight   = Tint{0.65, 0.68, 0.92}
	tintDawn    = Tint{1.0, 0.88, 0.75}
	tintDay     = Tint{1, 1, 1}
	tintDusk    = Tint{1.0, 0.85, 0.72}
	tintEvening = Tint{0.78, 0.82, 0.98}
)

// Hour returns the local hour of t as a fraction in [0, 24).
func Hour(t time.Time) float32 {
	return float32(t.Hour()) + float32(t.Minute())/60 + float32(t.Second())/3600
}

// EnergyModifier scales the mode's energy by time of day: 0.4 at night,
// 1.0 during the day, with smooth ramps at dawn and dusk.
func EnergyModifier(hour float32) float32 {
	switch {
	case hour < 5:
		return 0.4
	case hour < 7:
		return 0.4 + smoothstep(5, 7, hour)*0.4
	case hour < 9:
		return 0.8 + smoothstep(7, 9, hour)*0.2
	case hour < 17:
		return 1
	case hour < 20:
		return 1 - smoothstep(17, 20, hour)*0.2
	case hour < 23:
		return 0.8 - smoothstep(20, 23, hour)*0.4
	default:
		return 0.4
	}
}

// TintAt returns the ambient color tint for an hour.
func TintAt(hour float32) Tint {
	switch {
	case hour < 5:
		return tintNight
	case hour < 7:
		return lerpTint(tintNight, tintDawn, smoothstep(5, 7, hour))
	case hour < 8.5:
		return lerpTint(tintDawn, tintDay, smoothstep(7, 8.5, hour))
	case hour < 17:
		return tintDay
	case hour < 19:
		return lerpTint(tintDay, tintDusk, smoothstep(17, 19, hour))
	case hour < 21:
		return lerpTint(tintDusk, tintEvening, smoothstep(19, 21, hour))
	case hour < 23:
		return lerpTint(tintEvening, tintNight, smoothstep(21, 23, hour))
	default:
		return tintNight
	}
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := (x - edge0) / (edge1 - edge0)
	t = max(0, min(1, t))
	return t * t * (3 - 2*t)
}

func lerpTint(a, b Tint, t float32) Tint {
	return Tint{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}
