package ui

import "strconv"

// LinkKind tells page-number links from the previous/next arrows.
type LinkKind int

const (
	LinkPage LinkKind = iota
	LinkPrev
	LinkNext
)

// maxPageLinks is the width of the page-number window.
const maxPageLinks = 5

// PageLink is one entry of the pagination control. Target picks which
// table the link pages.
type PageLink struct {
	Target Target
	Kind   LinkKind
	Page   int
	Label  string
	Active bool
}

// Paginate returns the pagination control for page current of total pages:
// up to five numbered links centered on current, clipped to [1, total], with
// previous/next arrows except at the boundaries. Nil when total <= 1.
func Paginate(t Target, current, total int) []PageLink {
	if total <= 1 {
		return nil
	}
	current = min(max(current, 1), total)

	half := maxPageLinks / 2
	start := max(1, current-half)
	end := min(total, current+half)

	links := make([]PageLink, 0, maxPageLinks+2)
	if current > 1 {
		links = append(links, PageLink{Target: t, Kind: LinkPrev, Page: current - 1, Label: "‹"})
	}
	for i := start; i <= end; i++ {
		links = append(links, PageLink{
			Target: t,
			Kind:   LinkPage,
			Page:   i,
			Label:  strconv.Itoa(i),
			Active: i == current,
		})
	}
	if current < total {
		links = append(links, PageLink{Target: t, Kind: LinkNext, Page: current + 1, Label: "›"})
	}
	return links
}
