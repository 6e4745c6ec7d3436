// Package layout persists the sizes of the three panes and whether the
// navigation pane is collapsed.
package layout

import "math"

// Pane identifies one of the three panes, left to right.
type Pane int

const (
	PaneNav Pane = iota
	PaneList
	PaneDetail
)

// Default pane weights and collapsed flag used when nothing valid is stored.
var (
	DefaultSizes     = [3]float64{265, 440, 655}
	DefaultCollapsed = false
)

// A pane may not shrink below 1/minShareDiv of the total weight.
const minShareDiv = 10

// Layout is the persisted pane state.
type Layout struct {
	Sizes     [3]float64
	Collapsed bool
}

// Default returns the built-in layout.
func Default() Layout {
	return Layout{Sizes: DefaultSizes, Collapsed: DefaultCollapsed}
}

// Widths splits total columns between the panes in proportion to Sizes.
// A collapsed navigation pane gets exactly collapsedWidth columns and the
// remainder is shared by the list and detail panes. The three widths always
// sum to total (for total >= 0).
func (l Layout) Widths(total, collapsedWidth int) (nav, list, detail int) {
	if total <= 0 {
		return 0, 0, 0
	}
	sizes := l.Sizes
	if !validSizes(sizes) {
		sizes = DefaultSizes
	}

	if l.Collapsed {
		nav = min(max(collapsedWidth, 0), total)
		rest := total - nav
		list = int(math.Round(float64(rest) * sizes[1] / (sizes[1] + sizes[2])))
		return nav, list, rest - list
	}

	sum := sizes[0] + sizes[1] + sizes[2]
	nav = int(math.Round(float64(total) * sizes[0] / sum))
	list = int(math.Round(float64(total) * sizes[1] / sum))
	if nav+list > total {
		list = total - nav
	}
	return nav, list, total - nav - list
}

// Resize moves delta weight into p from its neighbour (the pane to its right,
// or the list pane when p is the detail pane). Negative delta shrinks p.
// Neither pane drops below a tenth of the total weight.
func (l Layout) Resize(p Pane, delta float64) Layout {
	if p < PaneNav || p > PaneDetail {
		return l
	}
	if !validSizes(l.Sizes) {
		l.Sizes = DefaultSizes
	}
	other := p + 1
	if p == PaneDetail {
		other = PaneList
	}

	sum := l.Sizes[0] + l.Sizes[1] + l.Sizes[2]
	floor := sum / minShareDiv

	switch {
	case delta > 0:
		delta = math.Min(delta, l.Sizes[other]-floor)
		if delta <= 0 {
			return l
		}
	case delta < 0:
		delta = math.Max(delta, floor-l.Sizes[p])
		if delta >= 0 {
			return l
		}
	default:
		return l
	}
	l.Sizes[p] += delta
	l.Sizes[other] -= delta
	return l
}

// Toggle flips the collapsed flag.
func (l Layout) Toggle() Layout {
	l.Collapsed = !l.Collapsed
	return l
}

func validSizes(s [3]float64) bool {
	for _, v := range s {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
