package telemetry

// Point is one generation's entry in the fitness history.
type Point struct {
	Generation int     `csv:"generation"`
	Best       float64 `csv:"best"`
	Average    float64 `csv:"average"`
}

// History is a bounded FIFO of fitness points. Once full, each Add evicts
// the oldest point.
type History struct {
	points []Point
	start  int
	count  int
}

// NewHistory creates a history holding at most capacity points.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{points: make([]Point, capacity)}
}

// Add appends p, evicting the oldest point when full.
func (h *History) Add(p Point) {
	n := len(h.points)
	if h.count < n {
		h.points[(h.start+h.count)%n] = p
		h.count++
		return
	}
	h.points[h.start] = p
	h.start = (h.start + 1) % n
}

// Len returns the number of stored points.
func (h *History) Len() int { return h.count }

// Cap returns the maximum number of stored points.
func (h *History) Cap() int { return len(h.points) }

// Points returns the stored points, oldest first.
func (h *History) Points() []Point {
	out := make([]Point, h.count)
	for i := range out {
		out[i] = h.points[(h.start+i)%len(h.points)]
	}
	return out
}

// Latest returns the newest point. ok is false when the history is empty.
func (h *History) Latest() (p Point, ok bool) {
	if h.count == 0 {
		return Point{}, false
	}
	return h.points[(h.start+h.count-1)%len(h.points)], true
}

// MaxBest returns the largest best-fitness value in the history, or 0.
func (h *History) MaxBest() float64 {
	var m float64
	for _, p := range h.Points() {
		if p.Best > m {
			m = p.Best
		}
	}
	return m
}
