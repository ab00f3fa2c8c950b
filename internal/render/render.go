// ABOUTME: Projects materials into escaped HTML display fragments.
// ABOUTME: Defines the display surface contract and an in-memory surface.

package render

import (
	"html/template"
	"strings"
	"sync"

	"github.com/harper/materials/internal/models"
)

// Fragment is one rendered material card.
type Fragment string

// HTML marks the fragment as safe for html/template; every interpolated
// field has already been escaped.
func (f Fragment) HTML() template.HTML {
	return template.HTML(f) //nolint:gosec // fields are escaped in Card
}

// CardClass is the class every card wrapper carries.
const CardClass = "material-card"

// Card renders a single material.
func Card(m models.Material) Fragment {
	return ClassedCard(m, CardClass)
}

// ClassedCard renders m with class as the wrapper's class attribute, so
// view state such as the theme can reach each card.
func ClassedCard(m models.Material, class string) Fragment {
	m = m.Normalized()

	var sb strings.Builder
	sb.WriteString(`<div class="` + Escape(class) + `">`)
	sb.WriteString("<h3>" + Escape(m.ResourceName) + "</h3>")
	sb.WriteString("<p><strong>Contributor:</strong> " + Escape(m.Contributor) + "</p>")
	sb.WriteString(`<p><strong>Link:</strong> <a href="` + Escape(m.Link) + `" target="_blank">` + Escape(m.Link) + "</a></p>")
	sb.WriteString(`<div class="tags">`)
	for _, tag := range m.Tags {
		sb.WriteString(`<span class="tag">` + Escape(tag) + "</span>")
	}
	sb.WriteString("</div></div>")
	return Fragment(sb.String())
}

// Render renders every material in order.
func Render(materials []models.Material) []Fragment {
	return RenderClassed(materials, CardClass)
}

// RenderClassed renders every material in order with the given card class.
func RenderClassed(materials []models.Material, class string) []Fragment {
	out := make([]Fragment, len(materials))
	for i, m := range materials {
		out[i] = ClassedCard(m, class)
	}
	return out
}

// Join concatenates fragments into one HTML string.
func Join(frags []Fragment) string {
	var sb strings.Builder
	for _, f := range frags {
		sb.WriteString(string(f))
	}
	return sb.String()
}

// Surface mounts rendered fragments. Replace swaps out everything it
// currently shows for frags.
type Surface interface {
	Replace(frags []Fragment)
}

// Buffer is a Surface that keeps the last fragments it was given.
type Buffer struct {
	mu    sync.RWMutex
	frags []Fragment
}

func (b *Buffer) Replace(frags []Fragment) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frags = append([]Fragment(nil), frags...)
}

func (b *Buffer) Fragments() []Fragment {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Fragment(nil), b.frags...)
}

func (b *Buffer) String() string {
	return Join(b.Fragments())
}
