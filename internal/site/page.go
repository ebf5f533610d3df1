// Package site renders the company website: a fixed set of pages with
// editable image slots and the chat widget shell.
package site

// Page identifies one view of the site
type Page string

const (
	Home            Page = "home"
	About           Page = "about"
	Telecom         Page = "telecom"
	Aviation        Page = "aviation"
	DigitalServices Page = "digital-services"
	Advisory        Page = "advisory"
	Contact         Page = "contact"
)

// NavItem is one entry in the header navigation
type NavItem struct {
	Page  Page
	Label string
}

// Navigation lists the header links in display order. Contact is rendered
// as the call-to-action button rather than a link.
var Navigation = []NavItem{
	{Home, "Home"},
	{About, "About Us"},
	{Telecom, "Telecom"},
	{Aviation, "Aviation"},
	{DigitalServices, "Digital Services"},
	{Advisory, "Advisory"},
}

// AviationAnchors are the in-page sections linked from the mobile menu
var AviationAnchors = []NavItem{
	{"airports", "Airports"},
	{"cargo", "Cargo"},
	{"daas", "DaaS"},
}

// All lists every page
var All = []Page{Home, About, Telecom, Aviation, DigitalServices, Advisory, Contact}

// Lookup maps an identifier to a page. Unknown identifiers fall back to Home.
func Lookup(id string) Page {
	for _, p := range All {
		if string(p) == id {
			return p
		}
	}
	return Home
}

// Path returns the URL path of the page
func (p Page) Path() string {
	if p == Home {
		return "/"
	}
	return "/" + string(p)
}

// Title returns the label used in the document title
func (p Page) Title() string {
	for _, item := range Navigation {
		if item.Page == p {
			return item.Label
		}
	}
	if p == Contact {
		return "Contact Us"
	}
	return "Home"
}
