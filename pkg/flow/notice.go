package flow

// scrollSlack tolerates sub-pixel rounding when deciding a reader hit the end.
const scrollSlack = 2

// Notice tracks whether the visitor notice has been read to the end.
// Heights are in whatever unit the renderer measures (pixels, lines).
// A Notice is not safe for concurrent use; Form guards the one it opens.
type Notice struct {
	contentHeight  int
	viewportHeight int
	readToEnd      bool
}

// NewNotice opens a notice. Content that fits the viewport counts as read.
func NewNotice(contentHeight, viewportHeight int) *Notice {
	return &Notice{
		contentHeight:  contentHeight,
		viewportHeight: viewportHeight,
		readToEnd:      contentHeight <= viewportHeight+scrollSlack,
	}
}

// Scroll records the current scroll offset. Reaching the end is sticky.
func (n *Notice) Scroll(top int) {
	if top+n.viewportHeight >= n.contentHeight-scrollSlack {
		n.readToEnd = true
	}
}

// CanAccept reports whether the acceptance control is enabled
func (n *Notice) CanAccept() bool {
	return n.readToEnd
}
