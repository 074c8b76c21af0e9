package services

// ProceedDirection buckets a bearing in degrees (counter-clockwise from
// east) into one of eight compass words.
//
// The south bucket opens strictly above 247.5, so a bearing of exactly
// 247.5 matches no bucket and falls through to "east", as does anything
// outside [0, 360).
func ProceedDirection(angle float64) string {
	switch {
	case angle >= 0 && angle < 22.5:
		return "east"
	case angle >= 22.5 && angle < 67.5:
		return "northeast"
	case angle >= 67.5 && angle < 112.5:
		return "north"
	case angle >= 112.5 && angle < 157.5:
		return "northwest"
	case angle >= 157.5 && angle < 202.5:
		return "west"
	case angle >= 202.5 && angle < 247.5:
		return "southwest"
	case angle > 247.5 && angle < 292.5:
		return "south"
	case angle >= 292.5 && angle < 337.5:
		return "southeast"
	default:
		return "east"
	}
}

// TurnDirection classifies a change of bearing in [0, 360).
// ok is false for near-straight changes (at most a degree off 0 or 360)
// and for an exact reversal.
func TurnDirection(angle float64) (dir string, ok bool) {
	switch {
	case angle > 1 && angle < 180:
		return "left", true
	case angle > 180 && angle < 359:
		return "right", true
	default:
		return "", false
	}
}
