package site

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"time"

	"Stratowave/internal/config"
	"Stratowave/internal/prefs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// DefaultLogo is served when no custom logo is stored
const DefaultLogo = "/static/logo.svg"

// Static returns the embedded stylesheet, script and default logo
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// ImageView is an image slot resolved against the preference store
type ImageView struct {
	Slot   ImageSlot
	Src    template.URL
	Custom bool
}

// CardView pairs a card with its resolved image
type CardView struct {
	Card  Card
	Image *ImageView
}

// SectionView pairs a section with its resolved image
type SectionView struct {
	Section Section
	Image   ImageView
}

type pageData struct {
	Page          Page
	Title         string
	Nav           []NavItem
	Anchors       []NavItem
	Site          config.SiteConfig
	Year          int
	SlideInterval int

	Content  Content
	Logo     ImageView
	Slides   []ImageView
	Banner   *ImageView
	Cards    []CardView
	Sections []SectionView
}

// Renderer renders pages with stored images substituted into their slots
type Renderer struct {
	tmpl   *template.Template
	store  prefs.Store
	site   config.SiteConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewRenderer parses the page templates. store may be nil, in which case
// every slot shows its placeholder.
func NewRenderer(store prefs.Store, site config.SiteConfig, logger *slog.Logger) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		tmpl:   tmpl,
		store:  store,
		site:   site,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Render renders page p to HTML
func (r *Renderer) Render(ctx context.Context, p Page) ([]byte, error) {
	content := Catalog[p]

	data := pageData{
		Page:          p,
		Title:         p.Title(),
		Nav:           Navigation,
		Anchors:       AviationAnchors,
		Site:          r.site,
		Year:          r.now().Year(),
		SlideInterval: SlideInterval,
		Content:       content,
		Logo:          r.image(ctx, ImageSlot{Key: prefs.LogoKey, Placeholder: "Logo"}, DefaultLogo),
	}

	for _, s := range content.Slideshow {
		data.Slides = append(data.Slides, r.image(ctx, s, ""))
	}
	if content.Banner != nil {
		banner := r.image(ctx, *content.Banner, "")
		data.Banner = &banner
	}
	for _, c := range content.Cards {
		view := CardView{Card: c}
		if c.Image != nil {
			img := r.image(ctx, *c.Image, "")
			view.Image = &img
		}
		data.Cards = append(data.Cards, view)
	}
	for _, s := range content.Sections {
		data.Sections = append(data.Sections, SectionView{Section: s, Image: r.image(ctx, s.Image, "")})
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return nil, fmt.Errorf("failed to render page %s: %w", p, err)
	}
	return buf.Bytes(), nil
}

// image looks up the stored image for slot. Values that no longer pass
// validation are ignored so only image data URLs reach a src attribute.
func (r *Renderer) image(ctx context.Context, slot ImageSlot, fallback string) ImageView {
	view := ImageView{Slot: slot, Src: template.URL(fallback)}
	if r.store == nil {
		return view
	}

	value, ok, err := r.store.Get(ctx, slot.Key)
	if err != nil {
		r.logger.Warn("failed to load stored image", "key", slot.Key, "error", err)
		return view
	}
	if !ok {
		return view
	}
	if err := prefs.ValidateImage(value); err != nil {
		r.logger.Warn("ignoring invalid stored image", "key", slot.Key, "error", err)
		return view
	}

	view.Src = template.URL(value)
	view.Custom = true
	return view
}
