package site

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"Stratowave/internal/config"
)

const pixel = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

// mapStore is an in-memory prefs.Store
type mapStore struct {
	values map[string]string
	err    error
}

func (s *mapStore) Get(_ context.Context, key string) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *mapStore) Set(_ context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

func (s *mapStore) Remove(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

func (s *mapStore) Close() error { return nil }

func TestLookup(t *testing.T) {
	tests := []struct {
		id   string
		want Page
	}{
		{"home", Home},
		{"about", About},
		{"digital-services", DigitalServices},
		{"contact", Contact},
		{"", Home},
		{"pricing", Home},
		{"Telecom", Home},
	}
	for _, tt := range tests {
		if got := Lookup(tt.id); got != tt.want {
			t.Errorf("Lookup(%q): expected %s, got %s", tt.id, tt.want, got)
		}
	}
}

func TestPagePathAndTitle(t *testing.T) {
	if Home.Path() != "/" || Advisory.Path() != "/advisory" {
		t.Errorf("Unexpected paths %s %s", Home.Path(), Advisory.Path())
	}
	if About.Title() != "About Us" || Contact.Title() != "Contact Us" {
		t.Errorf("Unexpected titles %s %s", About.Title(), Contact.Title())
	}
}

func TestCatalogCoversEveryPage(t *testing.T) {
	for _, p := range All {
		if Catalog[p].Title == "" {
			t.Errorf("page %s has no content", p)
		}
	}
}

func TestImageKeys(t *testing.T) {
	keys := ImageKeys()
	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate image key %s", k)
		}
		seen[k] = true
	}
	for _, want := range []string{"customLogo", "slideshow-image-0", "slideshow-image-3", "focus-area-digital-services-image", "telecom-strategy-image", "aviation-daas-image", "advisory-main-image"} {
		if !seen[want] {
			t.Errorf("missing image key %s", want)
		}
	}
}

func newTestRenderer(t *testing.T, store *mapStore) *Renderer {
	t.Helper()
	site := config.Default().Site
	site.Emails = []string{"info@example.com"}
	site.Phones = []string{"+91 00000 00000"}

	var r *Renderer
	var err error
	if store == nil {
		r, err = NewRenderer(nil, site, nil)
	} else {
		r, err = NewRenderer(store, site, nil)
	}
	if err != nil {
		t.Fatalf("NewRenderer() returned unexpected error: %v", err)
	}
	return r
}

func TestRender_Placeholders(t *testing.T) {
	r := newTestRenderer(t, nil)

	body, err := r.Render(context.Background(), Home)
	if err != nil {
		t.Fatalf("Render() returned unexpected error: %v", err)
	}
	html := string(body)

	for _, want := range []string{
		"Bridging Strategy and <span>Connectivity</span>",
		"Our Focus Areas",
		`href="/telecom"`,
		"Recommended: 600x450px",
		`data-key="slideshow-image-2"`,
		`src="/static/logo.svg"`,
		"AI Assistant",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected rendered home page to contain %q", want)
		}
	}
}

func TestRender_StoredImages(t *testing.T) {
	store := &mapStore{values: map[string]string{
		"focus-area-telecom-image":  pixel,
		"customLogo":                pixel,
		"focus-area-aviation-image": "javascript:alert(1)",
	}}
	r := newTestRenderer(t, store)

	body, err := r.Render(context.Background(), Home)
	if err != nil {
		t.Fatalf("Render() returned unexpected error: %v", err)
	}
	html := string(body)

	if strings.Count(html, `src="`+pixel+`"`) != 2 {
		t.Errorf("Expected stored logo and card image to be rendered")
	}
	if strings.Contains(html, "javascript:") {
		t.Error("Expected invalid stored value to be ignored")
	}
	if !strings.Contains(html, "Image for Aviation") {
		t.Error("Expected placeholder for the invalid slot")
	}
}

func TestRender_StoreErrorFallsBack(t *testing.T) {
	r := newTestRenderer(t, &mapStore{err: errors.New("database is locked")})

	body, err := r.Render(context.Background(), Advisory)
	if err != nil {
		t.Fatalf("Render() returned unexpected error: %v", err)
	}
	if !strings.Contains(string(body), "Image representing strategic advisory or planning") {
		t.Error("Expected banner placeholder when the store fails")
	}
}

func TestRender_EveryPage(t *testing.T) {
	r := newTestRenderer(t, nil)
	checks := map[Page]string{
		About:           "Pioneering Infrastructure Solutions",
		Telecom:         "MikroTik",
		Aviation:        `id="daas"`,
		DigitalServices: "GIS Based Asset Mapping",
		Advisory:        "Government &amp; PSU Engagement",
		Contact:         "mailto:info@example.com",
	}
	for p, want := range checks {
		body, err := r.Render(context.Background(), p)
		if err != nil {
			t.Fatalf("Render(%s) returned unexpected error: %v", p, err)
		}
		if !strings.Contains(string(body), want) {
			t.Errorf("Render(%s): expected %q", p, want)
		}
		if !strings.Contains(string(body), `href="`+p.Path()+`" class="active"`) && p != Contact {
			t.Errorf("Render(%s): expected active nav link", p)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("We offer **telecom** services:\n\n- Fiber\n- IP/MPLS\n\n<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("RenderMarkdown() returned unexpected error: %v", err)
	}
	s := string(html)
	if !strings.Contains(s, "<strong>telecom</strong>") || !strings.Contains(s, "<li>Fiber</li>") {
		t.Errorf("Unexpected markdown output: %s", s)
	}
	if strings.Contains(s, "<script>") {
		t.Error("Expected raw HTML to be dropped")
	}
}

func TestStatic(t *testing.T) {
	for _, name := range []string{"site.css", "site.js", "logo.svg"} {
		if _, err := fs.Stat(Static(), name); err != nil {
			t.Errorf("missing static file %s: %v", name, err)
		}
	}
}
