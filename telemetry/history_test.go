package telemetry

import "testing"

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	for g := 0; g < 5; g++ {
		h.Add(Point{Generation: g, Best: float64(g * 2), Average: float64(g)})
	}

	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	pts := h.Points()
	for i, want := range []int{2, 3, 4} {
		if pts[i].Generation != want {
			t.Errorf("point %d generation = %d, want %d", i, pts[i].Generation, want)
		}
	}
	latest, ok := h.Latest()
	if !ok || latest.Generation != 4 {
		t.Errorf("Latest = %+v %v, want generation 4", latest, ok)
	}
	if h.MaxBest() != 8 {
		t.Errorf("MaxBest = %v, want 8", h.MaxBest())
	}
}

func TestHistoryPartiallyFilled(t *testing.T) {
	h := NewHistory(100)
	h.Add(Point{Generation: 0, Best: 1})
	h.Add(Point{Generation: 1, Best: 3})

	if h.Len() != 2 || h.Cap() != 100 {
		t.Fatalf("Len/Cap = %d/%d, want 2/100", h.Len(), h.Cap())
	}
	pts := h.Points()
	if pts[0].Generation != 0 || pts[1].Generation != 1 {
		t.Errorf("points out of order: %+v", pts)
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(0)
	if h.Cap() != 1 {
		t.Errorf("Cap = %d, want 1", h.Cap())
	}
	if _, ok := h.Latest(); ok {
		t.Error("Latest on empty history reported ok")
	}
	if len(h.Points()) != 0 {
		t.Error("Points on empty history not empty")
	}
}
