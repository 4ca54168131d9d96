package display

// Kind is one of the four fixed pages.
type Kind int

const (
	LandscapeStatus Kind = iota
	LandscapeImage
	PortraitStatus
	PortraitImage
)

// NumPages is the length of the page cycle.
const NumPages = 4

// KindOf maps a page index onto its kind. The mapping is fixed.
func KindOf(index int) Kind {
	return Kind(((index % NumPages) + NumPages) % NumPages)
}

// Landscape reports whether the page is drawn in logical landscape
// coordinates.
func (k Kind) Landscape() bool {
	return k == LandscapeStatus || k == LandscapeImage
}

// Status reports whether the page shows live status text.
func (k Kind) Status() bool {
	return k == LandscapeStatus || k == PortraitStatus
}

func (k Kind) String() string {
	switch k {
	case LandscapeStatus:
		return "landscape-status"
	case LandscapeImage:
		return "landscape-image"
	case PortraitStatus:
		return "portrait-status"
	case PortraitImage:
		return "portrait-image"
	default:
		return "unknown"
	}
}

// Pager is the page state machine. It only moves forward, one page per
// accepted button event.
type Pager struct {
	index int
}

// Index returns the current page index in [0, NumPages).
func (p *Pager) Index() int {
	return p.index
}

// Kind returns the current page kind.
func (p *Pager) Kind() Kind {
	return KindOf(p.index)
}

// Advance moves to the next page and returns its kind.
func (p *Pager) Advance() Kind {
	p.index = (p.index + 1) % NumPages
	return p.Kind()
}

// RefreshDue reports whether an idle tick should redraw the current page.
// Image pages are static and never refreshed.
func (p *Pager) RefreshDue() bool {
	return p.Kind().Status()
}
