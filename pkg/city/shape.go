package city

import "math"

// ShapeFootprint normalizes a raw building cell into a legible footprint.
//
// Raw squarify cells can be arbitrarily thin slivers. Shaping clamps the
// aspect ratio into [MinAspect, MaxAspect] by shrinking the longer side,
// caps the absolute size at MaxFootprint, scales small cells up toward
// MinFootprint without exceeding the usable cell (the raw cell minus a
// SafetyInset margin per side), and finally applies a centering inset so
// neighboring footprints keep a visible gap.
//
// It returns the shaped width and depth plus the per-axis margin that
// centers the footprint inside the raw cell. The shaped footprint never
// drops below MinVisualFootprint on either side.
func ShapeFootprint(rawWidth, rawDepth float64) (width, depth, offsetX, offsetZ float64) {
	w := rawWidth
	d := rawDepth
	if w <= 0 || d <= 0 || math.IsNaN(w) || math.IsNaN(d) {
		w, d = MinVisualFootprint, MinVisualFootprint
	}

	// Aspect clamp: shrink the longer side only, never stretch the shorter.
	if w/d > MaxAspect {
		w = d * MaxAspect
	} else if w/d < MinAspect {
		d = w / MinAspect
	}

	// Absolute maximum: uniform downscale.
	if longest := math.Max(w, d); longest > MaxFootprint {
		scale := MaxFootprint / longest
		w *= scale
		d *= scale
	}

	// Absolute minimum: uniform upscale toward MinFootprint, bounded by the
	// usable cell so shaped footprints stay inside their slot.
	if shortest := math.Min(w, d); shortest < MinFootprint {
		scale := MinFootprint / shortest
		usableW := math.Max(rawWidth-2*SafetyInset, MinVisualFootprint)
		usableD := math.Max(rawDepth-2*SafetyInset, MinVisualFootprint)
		scale = math.Min(scale, math.Min(usableW/w, usableD/d))
		if scale > 1 {
			w *= scale
			d *= scale
		}
	}

	// Centering inset, reduced for small footprints so tiny buildings are
	// not padded away entirely.
	pad := CellPadding
	if shortest := math.Min(w, d); shortest < 4*CellPadding {
		pad = shortest / 4
	}
	w = math.Max(w-2*pad, MinVisualFootprint)
	d = math.Max(d-2*pad, MinVisualFootprint)

	return w, d, (rawWidth - w) / 2, (rawDepth - d) / 2
}
