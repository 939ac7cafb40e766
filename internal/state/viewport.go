package state

// ScrollOff is how many rows of context are kept between the selection and
// the edge of the list before the view scrolls.
const ScrollOff = 5

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxScroll(total, rows int) int {
	return max(0, total-rows)
}

// InitialScroll places the view for a freshly loaded listing so that sel is
// visible with ScrollOff rows of context where possible.
func InitialScroll(sel, total, rows int) int {
	var top int
	switch {
	case sel < rows-ScrollOff:
		top = 0
	case sel >= total-rows+ScrollOff:
		top = total - rows
	default:
		top = sel - rows/2
	}
	return clamp(top, 0, maxScroll(total, rows))
}

// IsOffscreen reports whether sel falls outside the rows starting at top.
func IsOffscreen(sel, top, rows int) bool {
	return sel < top || sel-top >= rows
}

// Recenter puts sel in the middle of the view.
func Recenter(sel, total, rows int) int {
	return clamp(sel-rows/2, 0, maxScroll(total, rows))
}

// StepScrollDown adjusts top after the selection moved down by one.
func StepScrollDown(sel, top, total, rows int) int {
	if sel-top >= rows-ScrollOff && sel+ScrollOff < total {
		top++
	}
	return keepVisible(sel, top, total, rows)
}

// StepScrollUp adjusts top after the selection moved up by one.
func StepScrollUp(sel, top, total, rows int) int {
	if sel-top <= ScrollOff {
		top = max(0, top-1)
	}
	return keepVisible(sel, top, total, rows)
}

func keepVisible(sel, top, total, rows int) int {
	if sel < top {
		top = sel
	} else if sel-top >= rows {
		top = sel - rows + 1
	}
	return clamp(top, 0, maxScroll(total, rows))
}

// settleViewport clamps the selection and scroll after the listing changed
// and recenters when the selection ended up out of view.
func (s *AppState) settleViewport() {
	s.clampSelection()
	rows := s.VisibleRows()
	total := len(s.Files)
	s.ScrollOffset = clamp(s.ScrollOffset, 0, maxScroll(total, rows))
	if IsOffscreen(s.SelectedIndex, s.ScrollOffset, rows) {
		s.ScrollOffset = Recenter(s.SelectedIndex, total, rows)
	}
}
