package city

import "math"

// BuildingHeight maps a file's byte size to a visual height.
//
// Growth is sublinear: near-empty files sit just above the floor, and the
// curve saturates at MaxHeight so giant blobs don't dwarf the rest of the
// city.
func BuildingHeight(size int64) float64 {
	h := (math.Log10(float64(size)+10)-1)*7 + 2
	return clamp(h, MinHeight, MaxHeight)
}

// DerateHeight scales a building height down when its shaped footprint is
// much smaller than a 2×2 reference, preventing implausible toothpick towers
// on tiny lots. The derating factor never drops below 0.25, so every
// building keeps a small positive height.
func DerateHeight(height, width, depth float64) float64 {
	return height * clamp(math.Sqrt(width*depth)/3, 0.25, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
