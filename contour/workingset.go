package contour

import "github.com/jsphweid/makampitch/model"

type slot struct {
	c      model.Contour
	active bool
}

// workingSet is an arena of the contours not yet resolved. Slots are never
// reordered, so scanning them preserves the original iteration order.
type workingSet struct {
	slots []slot
	live  int
}

func newWorkingSet(contours []model.Contour) *workingSet {
	ws := &workingSet{slots: make([]slot, len(contours)), live: len(contours)}
	for i, c := range contours {
		ws.slots[i] = slot{c: c, active: true}
	}
	return ws
}

func (ws *workingSet) empty() bool {
	return ws.live == 0
}

func (ws *workingSet) remove(i int) {
	ws.slots[i].active = false
	ws.live--
}

// extractLongest removes and returns the longest active contour. Ties go to
// the first one encountered.
func (ws *workingSet) extractLongest() model.Contour {
	best := -1
	for i, s := range ws.slots {
		if !s.active {
			continue
		}
		if best == -1 || s.c.Len() > ws.slots[best].c.Len() {
			best = i
		}
	}
	c := ws.slots[best].c
	ws.remove(best)
	return c
}
