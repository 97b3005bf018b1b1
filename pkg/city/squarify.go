package city

import "math"

// Squarify partitions rect among the given weights using the greedy
// row-growing squarified treemap heuristic.
//
// The result has one cell per weight, in the same order the weights were
// supplied (no internal re-sorting), cell areas exactly proportional to
// weight, and the cells exactly tiling rect with no gaps or overlaps.
//
// Rows are laid along the longer side of rect. Each row grows greedily: a
// candidate item joins the current row only while doing so does not worsen
// the row's worst aspect ratio; otherwise the row is closed and a new one
// starts in the remaining rectangle.
//
// Zero weights total (unreachable when weights come from [Weight]) yields an
// empty result rather than a division by zero.
func Squarify(weights []float64, rect Rect) []Rect {
	switch len(weights) {
	case 0:
		return nil
	case 1:
		// Base case: a single item fills the rectangle unchanged.
		return []Rect{rect}
	}

	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return nil
	}

	// Rows run along the longer side; the axis is fixed for the whole call.
	horizontal := rect.Width >= rect.Depth

	var mainStart, secStart, mainDim, secDim float64
	if horizontal {
		mainStart, secStart = rect.X, rect.Z
		mainDim, secDim = rect.Width, rect.Depth
	} else {
		mainStart, secStart = rect.Z, rect.X
		mainDim, secDim = rect.Depth, rect.Width
	}

	out := make([]Rect, len(weights))

	cursor := mainStart
	remainingMain := mainDim
	remainingWeight := total
	start := 0

	for start < len(weights) {
		// Grow the row while the worst aspect ratio does not increase.
		rowWeight := weights[start]
		end := start + 1
		for end < len(weights) {
			current := worstRatio(weights[start:end], rowWeight, remainingWeight, remainingMain, secDim)
			withNext := worstRatio(weights[start:end+1], rowWeight+weights[end], remainingWeight, remainingMain, secDim)
			if withNext > current {
				break
			}
			rowWeight += weights[end]
			end++
		}

		// Lay out the closed row: a strip of width rowDim along the main
		// axis, subdivided among its items proportionally to weight.
		rowDim := rowWeight / remainingWeight * remainingMain
		offset := secStart
		for i := start; i < end; i++ {
			itemDim := weights[i] / rowWeight * secDim
			if horizontal {
				out[i] = Rect{X: cursor, Z: offset, Width: rowDim, Depth: itemDim}
			} else {
				out[i] = Rect{X: offset, Z: cursor, Width: itemDim, Depth: rowDim}
			}
			offset += itemDim
		}

		cursor += rowDim
		remainingMain -= rowDim
		remainingWeight -= rowWeight
		start = end
	}

	return out
}

// worstRatio returns the worst (largest) aspect ratio among the row's items
// if the row were closed now. The row occupies a strip of the remaining
// rectangle proportional to its share of the remaining weight.
func worstRatio(row []float64, rowWeight, remainingWeight, mainDim, secDim float64) float64 {
	if rowWeight <= 0 || remainingWeight <= 0 {
		return math.Inf(1)
	}
	rowDim := rowWeight / remainingWeight * mainDim

	worst := 0.0
	for _, w := range row {
		itemDim := w / rowWeight * secDim
		r := aspect(rowDim, itemDim)
		if r > worst {
			worst = r
		}
	}
	return worst
}

// aspect returns the aspect ratio of an a×b cell, always >= 1.
func aspect(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return math.Inf(1)
	}
	if a > b {
		return a / b
	}
	return b / a
}
