package components

import "strings"

const (
	scrollTrack = "│"
	scrollThumb = "┃"
)

// RenderScrollbar renders a 1-column vertical scrollbar of viewHeight rows for
// content of contentHeight rows scrolled to yOffset. When everything fits, it
// renders a blank gutter so column widths stay stable.
func RenderScrollbar(viewHeight, contentHeight, yOffset int) string {
	return strings.Join(ScrollbarLines(viewHeight, contentHeight, yOffset), "\n")
}

// ScrollbarLines is RenderScrollbar split into rows, for joining next to
// other line-based content.
func ScrollbarLines(viewHeight, contentHeight, yOffset int) []string {
	if viewHeight <= 0 {
		return nil
	}

	lines := make([]string, viewHeight)
	if contentHeight <= viewHeight {
		for i := range lines {
			lines[i] = " "
		}
		return lines
	}

	thumbSize := max(1, viewHeight*viewHeight/contentHeight)
	maxOffset := contentHeight - viewHeight
	thumbMaxTop := viewHeight - thumbSize

	thumbTop := yOffset * thumbMaxTop / maxOffset
	thumbTop = min(max(thumbTop, 0), thumbMaxTop)

	for i := range lines {
		if i >= thumbTop && i < thumbTop+thumbSize {
			lines[i] = scrollThumb
		} else {
			lines[i] = scrollTrack
		}
	}
	return lines
}
