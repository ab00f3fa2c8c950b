// ABOUTME: Tests for escaping and card rendering.
// ABOUTME: Ensures user text never reaches output unescaped.

package render

import (
	"regexp"
	"strings"
	"testing"

	"github.com/harper/materials/internal/models"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{`<script>`, "&lt;script&gt;"},
		{`a & b`, "a &amp; b"},
		{`"quoted"`, "&quot;quoted&quot;"},
		{`it's`, "it&#039;s"},
		{`&amp;`, "&amp;amp;"},
		{"plain", "plain"},
		{42, ""},
		{nil, ""},
		{[]string{"x"}, ""},
	}

	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// fieldText extracts every interpolated text region of a card: element
// text and the href attribute value.
var fieldText = regexp.MustCompile(`>([^<]*)<|href="([^"]*)"`)

// entity matches the escape sequences the escaper emits.
var entity = regexp.MustCompile(`&(amp|lt|gt|quot|#039);`)

func TestCardEscapesAllFields(t *testing.T) {
	hostile := `<script>"x" & 'y'</script>`
	m := models.Material{
		Contributor:  hostile,
		ResourceName: hostile,
		Link:         `javascript:alert("1")'>`,
		Tags:         []string{hostile, "<b>"},
	}

	out := string(Card(m))

	if strings.Contains(out, "<script>") {
		t.Fatalf("raw markup leaked into output: %s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("expected escaped contributor in output: %s", out)
	}

	for _, match := range fieldText.FindAllStringSubmatch(out, -1) {
		text := match[1] + match[2]
		stripped := entity.ReplaceAllString(text, "")
		if strings.ContainsAny(stripped, `<>&"'`) {
			t.Errorf("unescaped character in field text %q", text)
		}
	}
}

func TestCardStructure(t *testing.T) {
	m := models.Material{
		Contributor:  "alice",
		ResourceName: "Go Tour",
		Link:         "https://go.dev/tour",
		Tags:         []string{"go", "intro"},
	}

	out := string(Card(m))

	for _, want := range []string{
		"<h3>Go Tour</h3>",
		"<strong>Contributor:</strong> alice",
		`<a href="https://go.dev/tour" target="_blank">https://go.dev/tour</a>`,
		`<span class="tag">go</span><span class="tag">intro</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %s", want, out)
		}
	}
}

func TestCardDefaults(t *testing.T) {
	out := string(Card(models.Material{}))

	if !strings.Contains(out, "<h3>No Title</h3>") {
		t.Error("expected default title")
	}
	if !strings.Contains(out, "Anonymous") {
		t.Error("expected default contributor")
	}
	if !strings.Contains(out, `href="#"`) {
		t.Error("expected default link")
	}
}

func TestCardMissingTags(t *testing.T) {
	out := string(Card(models.Material{ResourceName: "x"}))

	if n := strings.Count(out, `class="tag"`); n != 0 {
		t.Errorf("expected zero tag chips, got %d", n)
	}
}

func TestCardEmptyTagChip(t *testing.T) {
	out := string(Card(models.Material{Tags: []string{"a", "", "b"}}))

	if n := strings.Count(out, `class="tag"`); n != 3 {
		t.Errorf("expected 3 tag chips, got %d", n)
	}
}

func TestRenderIdempotent(t *testing.T) {
	ms := []models.Material{{ResourceName: "A"}, {ResourceName: "B"}}
	var buf Buffer

	buf.Replace(Render(ms))
	first := buf.String()
	buf.Replace(Render(ms))
	second := buf.String()

	if first != second {
		t.Error("expected identical output on second render")
	}
	if n := len(buf.Fragments()); n != 2 {
		t.Errorf("expected surface to hold 2 fragments, got %d", n)
	}
}

func TestBufferReplaceShrinks(t *testing.T) {
	var buf Buffer
	buf.Replace(Render([]models.Material{{ResourceName: "A"}, {ResourceName: "B"}}))
	buf.Replace(Render([]models.Material{{ResourceName: "C"}}))

	out := buf.String()
	if strings.Contains(out, ">A<") || strings.Contains(out, ">B<") {
		t.Error("expected previous fragments to be replaced")
	}
	if !strings.Contains(out, "<h3>C</h3>") {
		t.Error("expected new fragment")
	}
}

func TestClassedCard(t *testing.T) {
	m := models.Material{ResourceName: "Go Tour"}

	out := string(ClassedCard(m, "material-card dark-mode"))
	if !strings.HasPrefix(out, `<div class="material-card dark-mode">`) {
		t.Errorf("expected themed wrapper, got %s", out)
	}
	if string(Card(m)) != string(ClassedCard(m, CardClass)) {
		t.Error("expected Card to use the default card class")
	}
}
