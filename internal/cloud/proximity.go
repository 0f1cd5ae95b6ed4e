package cloud

// Pair is an unordered edge between two points, stored with J < K.
type Pair struct {
	J, K int
}

// Neighbors appends to dst every pair of points closer than threshold and
// returns the extended slice. The scan is exhaustive, which is fine for a few
// hundred points per frame.
func Neighbors(dst []Pair, points []Vec2, threshold float64) []Pair {
	limit := threshold * threshold
	for j := 0; j < len(points); j++ {
		pj := points[j]
		for k := j + 1; k < len(points); k++ {
			dx := points[k].X - pj.X
			dy := points[k].Y - pj.Y
			if dx*dx+dy*dy < limit {
				dst = append(dst, Pair{J: j, K: k})
			}
		}
	}
	return dst
}
