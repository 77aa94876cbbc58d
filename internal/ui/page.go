package ui

// Page is one screen of the site.
type Page int

const (
	PageHome Page = iota
	PageAbout
	PageEvents
	PageTeam
	PageContact
)

// Pages lists every page in navbar order.
var Pages = []Page{PageHome, PageAbout, PageEvents, PageTeam, PageContact}

func (p Page) String() string {
	switch p {
	case PageHome:
		return "Home"
	case PageAbout:
		return "About"
	case PageEvents:
		return "Events"
	case PageTeam:
		return "Team"
	case PageContact:
		return "Contact"
	default:
		return "Unknown"
	}
}

// Cycle returns the page delta steps away, wrapping around.
func (p Page) Cycle(delta int) Page {
	n := len(Pages)
	return Page(((int(p)+delta)%n + n) % n)
}
