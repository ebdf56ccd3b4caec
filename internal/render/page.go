package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	json "github.com/goccy/go-json"

	"github.com/vanshika/recipenet/internal/config"
	"github.com/vanshika/recipenet/internal/domain"
	"github.com/vanshika/recipenet/internal/service"
)

// VisNetworkURL is the vis-network build the page loads.
const VisNetworkURL = "https://unpkg.com/vis-network@9.1.9/standalone/umd/vis-network.min.js"

// PageData is everything the dashboard page shows.
type PageData struct {
	Categories []domain.CategoryKey
	View       service.View
	Filter     config.FilterConfig
}

type categoryOption struct {
	Label    string
	Selected bool
}

type pageModel struct {
	Label         string
	ScriptURL     string
	Categories    []categoryOption
	MaxEdges      int
	MaxEdgesMin   int
	MaxEdgesLimit int
	MaxEdgesStep  int
	MinCount      int
	NodeCount     int
	EdgeCount     int
	Components    int
	Empty         bool
	GraphJSON     template.JS
	OptionsJSON   template.JS
	StylesJSON    template.JS
}

type graphJSON struct {
	Nodes []nodeJSON `json:"nodes"`
	Edges []edgeJSON `json:"edges"`
}

type nodeJSON struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

type edgeJSON struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
	Color  string  `json:"color"`
	Title  string  `json:"title"`
}

// PageRenderer writes the interactive dashboard page.
type PageRenderer struct {
	physics Physics
	tmpl    *template.Template
}

// NewPageRenderer parses the page template once for the given physics.
func NewPageRenderer(physics Physics) (*PageRenderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &PageRenderer{physics: physics, tmpl: tmpl}, nil
}

// Render writes the page for data to w. The page is rendered into a buffer first
// so a failure never leaves a partial document on w.
func (r *PageRenderer) Render(w io.Writer, data PageData) error {
	model, err := r.model(data)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, model); err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func (r *PageRenderer) model(data PageData) (pageModel, error) {
	view := data.View

	graph := graphJSON{
		Nodes: make([]nodeJSON, 0, len(view.Nodes)),
		Edges: make([]edgeJSON, 0, len(view.Edges)),
	}
	for _, n := range view.Nodes {
		graph.Nodes = append(graph.Nodes, nodeJSON{ID: n.ID, Label: n.Label, Title: n.Title, Count: n.Count})
	}
	for _, e := range view.Edges {
		graph.Edges = append(graph.Edges, edgeJSON{Source: e.Source, Target: e.Target, Weight: e.Weight, Color: e.Color, Title: e.Title})
	}

	graphData, err := json.Marshal(graph)
	if err != nil {
		return pageModel{}, fmt.Errorf("encode graph: %w", err)
	}
	optionsData, err := json.Marshal(r.physics.options())
	if err != nil {
		return pageModel{}, fmt.Errorf("encode options: %w", err)
	}
	stylesData, err := json.Marshal(styleTable())
	if err != nil {
		return pageModel{}, fmt.Errorf("encode styles: %w", err)
	}

	options := make([]categoryOption, 0, len(data.Categories))
	for _, key := range data.Categories {
		options = append(options, categoryOption{Label: key.Label(), Selected: key == view.Key})
	}

	step := data.Filter.MaxEdgesStep
	if step <= 0 {
		step = 1
	}

	return pageModel{
		Label:         view.Label,
		ScriptURL:     VisNetworkURL,
		Categories:    options,
		MaxEdges:      view.Params.MaxEdges,
		MaxEdgesMin:   step,
		MaxEdgesLimit: data.Filter.MaxEdgesLimit,
		MaxEdgesStep:  step,
		MinCount:      view.Params.MinNodeCount,
		NodeCount:     len(view.Nodes),
		EdgeCount:     len(view.Edges),
		Components:    view.Components,
		Empty:         len(view.Edges) == 0,
		GraphJSON:     template.JS(graphData),
		OptionsJSON:   template.JS(optionsData),
		StylesJSON:    template.JS(stylesData),
	}, nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Label}} network</title>
<script src="{{.ScriptURL}}"></script>
<style>
  body { margin: 0; font-family: sans-serif; display: flex; min-height: 100vh; }
  aside { width: 260px; padding: 16px; background: #F4F4F4; box-sizing: border-box; }
  aside label { display: block; margin: 12px 0 4px; font-size: 14px; }
  aside select, aside input { width: 100%; }
  main { flex: 1; padding: 16px; }
  #network { height: 700px; width: 100%; background: #FFFFFF; border: 1px solid #E0E0E0; }
  .caption { color: #555555; font-size: 14px; margin-top: 8px; }
  .hint { color: #B45309; }
</style>
</head>
<body>
<aside>
  <h2>Graph settings</h2>
  <form method="get" action="/">
    <label for="category">Category</label>
    <select id="category" name="category" onchange="this.form.submit()">
      {{range .Categories}}<option value="{{.Label}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
      {{end}}
    </select>
    <h3>Filters</h3>
    <label for="maxEdges">Maximum edges: <output id="maxEdgesOut">{{.MaxEdges}}</output></label>
    <input id="maxEdges" name="maxEdges" type="range" min="{{.MaxEdgesMin}}" max="{{.MaxEdgesLimit}}" step="{{.MaxEdgesStep}}" value="{{.MaxEdges}}"
      oninput="document.getElementById('maxEdgesOut').value = this.value">
    <label for="minCount">Minimum node count</label>
    <input id="minCount" name="minCount" type="number" min="0" step="10" value="{{.MinCount}}">
    <p><button type="submit">Apply</button></p>
  </form>
</aside>
<main>
  <h1>{{.Label}} network</h1>
  <div id="network"></div>
  {{if .Empty}}<p class="caption hint">No edges match the current filter. Lower the minimum node count or raise the edge limit.</p>
  {{else}}<p class="caption">Visible nodes: {{.NodeCount}} | edges: {{.EdgeCount}} | components: {{.Components}} | Hover over an ingredient to highlight the ingredients it appears with.</p>
  {{end}}
</main>
<script>
(function () {
  var graph = {{.GraphJSON}};
  var styles = {{.StylesJSON}};
  var options = {{.OptionsJSON}};

  var neighbours = {};
  graph.nodes.forEach(function (n) { neighbours[n.id] = new Set(); });
  graph.edges.forEach(function (e) {
    if (e.source === e.target) { return; }
    neighbours[e.source].add(e.target);
    neighbours[e.target].add(e.source);
  });

  function paint(id, state) {
    var s = styles[state];
    return { id: id, size: s.size, color: s.color, font: { size: s.fontSize, color: s.fontColor } };
  }

  // Every event repaints every node from the hovered id alone.
  function project(hovered) {
    return graph.nodes.map(function (n) {
      if (hovered === null) { return paint(n.id, "neutral"); }
      if (n.id === hovered || (neighbours[hovered] && neighbours[hovered].has(n.id))) {
        return paint(n.id, "emphasized");
      }
      return paint(n.id, "dimmed");
    });
  }

  var nodes = new vis.DataSet(graph.nodes.map(function (n) {
    return Object.assign(paint(n.id, "neutral"), { label: n.label, title: n.title });
  }));
  var edges = new vis.DataSet(graph.edges.map(function (e, i) {
    return { id: i, from: e.source, to: e.target, title: e.title, color: { color: e.color } };
  }));

  var network = new vis.Network(document.getElementById("network"), { nodes: nodes, edges: edges }, options);
  network.on("hoverNode", function (params) { nodes.update(project(params.node)); });
  network.on("blurNode", function () { nodes.update(project(null)); });
})();
</script>
</body>
</html>
`
