package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sum3(a [3]float64) float64 { return a[0] + a[1] + a[2] }

func TestDefault(t *testing.T) {
	l := Default()
	assert.Equal(t, [3]float64{265, 440, 655}, l.Sizes)
	assert.False(t, l.Collapsed)
}

func TestWidths_Expanded(t *testing.T) {
	for _, total := range []int{1, 7, 80, 136, 211, 400} {
		nav, list, detail := Default().Widths(total, 6)
		assert.Equal(t, total, nav+list+detail, "total %d", total)
		assert.GreaterOrEqual(t, nav, 0)
		assert.GreaterOrEqual(t, list, 0)
		assert.GreaterOrEqual(t, detail, 0)
	}

	nav, list, detail := Default().Widths(136, 6)
	assert.Equal(t, 27, nav)
	assert.Equal(t, 44, list)
	assert.Equal(t, 65, detail)
}

func TestWidths_Collapsed(t *testing.T) {
	l := Default().Toggle()
	nav, list, detail := l.Widths(100, 6)
	assert.Equal(t, 6, nav)
	assert.Equal(t, 38, list)
	assert.Equal(t, 56, detail)

	nav, list, detail = l.Widths(4, 6)
	assert.Equal(t, 4, nav)
	assert.Equal(t, 0, list+detail)
}

func TestWidths_InvalidSizesUseDefaults(t *testing.T) {
	bad := Layout{Sizes: [3]float64{0, -1, 10}}
	n1, l1, d1 := bad.Widths(136, 6)
	n2, l2, d2 := Default().Widths(136, 6)
	assert.Equal(t, [3]int{n2, l2, d2}, [3]int{n1, l1, d1})
}

func TestWidths_ZeroTotal(t *testing.T) {
	nav, list, detail := Default().Widths(0, 6)
	assert.Zero(t, nav+list+detail)
}

func TestResize(t *testing.T) {
	tests := []struct {
		name  string
		pane  Pane
		delta float64
		want  [3]float64
	}{
		{"grow nav", PaneNav, 50, [3]float64{315, 390, 655}},
		{"shrink nav to floor", PaneNav, -1000, [3]float64{136, 569, 655}},
		{"grow list from detail", PaneList, 100, [3]float64{265, 540, 555}},
		{"grow detail from list", PaneDetail, 100, [3]float64{265, 340, 755}},
		{"grow detail capped", PaneDetail, 1000, [3]float64{265, 136, 959}},
		{"zero delta", PaneList, 0, [3]float64{265, 440, 655}},
		{"unknown pane", Pane(7), 10, [3]float64{265, 440, 655}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Default().Resize(tt.pane, tt.delta)
			assert.Equal(t, tt.want, got.Sizes)
			assert.InDelta(t, sum3(DefaultSizes), sum3(got.Sizes), 1e-9)
		})
	}
}

func TestResize_AtFloorIsNoop(t *testing.T) {
	l := Default().Resize(PaneNav, -1000)
	again := l.Resize(PaneNav, -10)
	assert.Equal(t, l.Sizes, again.Sizes)
}

func TestToggle(t *testing.T) {
	l := Default()
	assert.True(t, l.Toggle().Collapsed)
	assert.False(t, l.Toggle().Toggle().Collapsed)
	assert.False(t, l.Collapsed, "Toggle must not mutate the receiver")
}
