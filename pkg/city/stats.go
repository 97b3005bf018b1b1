package city

// Stats summarizes a computed layout for status overlays and API consumers.
type Stats struct {
	Buildings  int         `json:"buildings"`
	Districts  int         `json:"districts"`
	TotalSize  int64       `json:"total_size"`
	MaxDepth   int         `json:"max_depth"`
	PeakHeight float64     `json:"peak_height"`
	Bounds     BoundingBox `json:"bounds"`
}

// Summarize computes layout statistics in one pass over the flattened lists.
func Summarize(root *Node) Stats {
	s := Stats{Bounds: Bounds(root)}
	s.PeakHeight = s.Bounds.PeakHeight

	for _, d := range FlattenDistricts(root) {
		s.Districts++
		if d.TreeDepth > s.MaxDepth {
			s.MaxDepth = d.TreeDepth
		}
	}
	for _, b := range FlattenBuildings(root) {
		s.Buildings++
		s.TotalSize += b.Size
		if b.TreeDepth > s.MaxDepth {
			s.MaxDepth = b.TreeDepth
		}
	}
	return s
}
