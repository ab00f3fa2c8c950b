// ABOUTME: Page shell that mounts rendered material fragments.
// ABOUTME: Holds the form, search box and theme toggle markup.

package web

import (
	"html/template"

	"github.com/harper/materials/internal/render"
	"github.com/harper/materials/internal/ui"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Tech Materials</title>
</head>
<body class="{{.Body}}">
<h1 class="{{.Header}}">Tech Materials</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<section class="{{.Section}}">
<form id="materialForm" method="post" action="/materials">
<label class="{{.Label}}" for="contributor">Contributor</label>
<input id="contributor" name="contributor">
<label class="{{.Label}}" for="resourceName">Resource name</label>
<input id="resourceName" name="resourceName">
<label class="{{.Label}}" for="link">Link</label>
<input id="link" name="link">
<label class="{{.Label}}" for="tags">Tags (comma separated)</label>
<input id="tags" name="tags">
<button type="submit">Add material</button>
</form>
</section>
<form method="post" action="/theme"><button id="toggleTheme" type="submit">Toggle theme</button></form>
<form method="get" action="/"><input id="searchInput" name="q" value="{{.Query}}" placeholder="Search"></form>
<div id="materialsList" class="{{.List}}">
{{range .Cards}}{{.}}
{{end}}</div>
<script>
(function () {
  var input = document.getElementById("searchInput");
  var list = document.getElementById("materialsList");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (ev) { list.innerHTML = JSON.parse(ev.data).html; };
  input.addEventListener("input", function () {
    if (ws.readyState === 1) { ws.send(JSON.stringify({query: input.value})); }
  });
})();
</script>
</body>
</html>
`))

type pageData struct {
	Body    string
	Header  string
	Section string
	Label   string
	List    string
	Query   string
	Error   string
	Cards   []template.HTML
}

// newPageData applies the theme to the page's themeable elements and
// mounts frags in the list.
func newPageData(state ui.ViewState, query, errMsg string, frags []render.Fragment) pageData {
	body := ui.NewClassList()
	header := ui.NewClassList()
	section := ui.NewClassList("add-material")
	label := ui.NewClassList()
	list := ui.NewClassList("materials")
	ui.ApplyTheme(state, body, header, section, label, list)

	cards := make([]template.HTML, len(frags))
	for i, f := range frags {
		cards[i] = f.HTML()
	}
	return pageData{
		Body:    body.String(),
		Header:  header.String(),
		Section: section.String(),
		Label:   label.String(),
		List:    list.String(),
		Query:   query,
		Error:   errMsg,
		Cards:   cards,
	}
}
