package contour

import "github.com/jsphweid/makampitch/model"

// frameRange is the half open interval [start, end).
type frameRange struct {
	start int
	end   int
}

func rangeOf(c model.Contour) frameRange {
	return frameRange{start: c.StartFrame, end: c.End()}
}

func (r frameRange) overlaps(o frameRange) bool {
	return r.start < o.end && o.start < r.end
}

// keptSpan returns the first and last frame of r left over once claimed is
// taken out. When claimed splits r in two the span covers both pieces and
// everything between them, including the claimed frames.
func keptSpan(r, claimed frameRange) (lo, hi int, ok bool) {
	if !r.overlaps(claimed) {
		return r.start, r.end - 1, true
	}

	hasLeft := r.start < claimed.start
	hasRight := claimed.end < r.end
	switch {
	case hasLeft && hasRight:
		return r.start, r.end - 1, true
	case hasLeft:
		return r.start, claimed.start - 1, true
	case hasRight:
		return claimed.end, r.end - 1, true
	default:
		return 0, 0, false
	}
}

// trim cuts c down to the frames [lo, hi]. The result shares backing arrays
// with c but is never written through.
func trim(c model.Contour, lo, hi int) model.Contour {
	from := lo - c.StartFrame
	to := hi - c.StartFrame + 1
	return model.Contour{
		StartFrame: lo,
		Values:     c.Values[from:to:to],
		Saliences:  c.Saliences[from:to:to],
	}
}

// trimAll resolves every active contour against the claimed range and
// returns how many were fully overlapped and dropped.
func (ws *workingSet) trimAll(claimed frameRange) int {
	var dropped int
	for i := range ws.slots {
		s := &ws.slots[i]
		if !s.active {
			continue
		}
		lo, hi, ok := keptSpan(rangeOf(s.c), claimed)
		if !ok {
			ws.remove(i)
			dropped++
			continue
		}
		if lo != s.c.StartFrame || hi != s.c.End()-1 {
			s.c = trim(s.c, lo, hi)
		}
	}
	return dropped
}
