package contour

import (
	"fmt"
	"testing"

	"github.com/jsphweid/makampitch/model"
	"github.com/stretchr/testify/assert"
)

func TestKeptSpan(t *testing.T) {
	cases := []struct {
		r, claimed frameRange
		lo, hi     int
		ok         bool
	}{
		{frameRange{0, 5}, frameRange{10, 12}, 0, 4, true},
		{frameRange{0, 5}, frameRange{5, 8}, 0, 4, true},
		{frameRange{2, 6}, frameRange{0, 5}, 5, 5, true},
		{frameRange{0, 6}, frameRange{4, 9}, 0, 3, true},
		{frameRange{3, 6}, frameRange{3, 6}, 0, 0, false},
		{frameRange{3, 6}, frameRange{0, 9}, 0, 0, false},
		// a hole in the middle keeps the whole outer span
		{frameRange{0, 10}, frameRange{4, 6}, 0, 9, true},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v minus %v", tc.r, tc.claimed), func(t *testing.T) {
			lo, hi, ok := keptSpan(tc.r, tc.claimed)
			assert.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.lo, lo)
				assert.Equal(t, tc.hi, hi)
			}
		})
	}
}

func TestTrimAllKeepsSpanAcrossHole(t *testing.T) {
	ws := newWorkingSet([]model.Contour{flat(0, 10, 3)})

	dropped := ws.trimAll(frameRange{4, 6})

	assert := assert.New(t)
	assert.Zero(dropped)
	assert.Equal(0, ws.slots[0].c.StartFrame)
	assert.Equal(10, ws.slots[0].c.Len())
}

func TestTrimAllSkipsInactiveSlots(t *testing.T) {
	ws := newWorkingSet([]model.Contour{flat(0, 4, 1), flat(0, 4, 2), flat(2, 4, 3)})
	ws.extractLongest()

	dropped := ws.trimAll(frameRange{0, 4})

	assert := assert.New(t)
	assert.Equal(1, dropped)
	assert.False(ws.slots[1].active)
	assert.Equal(4, ws.slots[2].c.StartFrame)
	assert.Equal([]float64{3, 3}, ws.slots[2].c.Values)
	assert.Equal(1, ws.live)
}
