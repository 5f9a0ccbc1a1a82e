package gateway

import (
	"strings"

	"ollamamcp/internal/jsonv"
)

// infoSections is the fixed emission order for POST /show blocks.
var infoSections = []struct{ key, title string }{
	{"modelfile", "Modelfile"},
	{"parameters", "Parameters"},
	{"template", "Template"},
}

// RenderModelInfo renders a /show response as markdown: a heading, then the
// Modelfile, Parameters and Template blocks, then Details bullets, each only
// when its key is present. Details keep the response's key order.
func RenderModelInfo(name string, info jsonv.Value) string {
	out := []string{"# Model: " + name}
	for _, s := range infoSections {
		v := info.Lookup(s.key)
		if !v.Exists() {
			continue
		}
		out = append(out, "\n## "+s.title, "```\n"+v.Text()+"\n```")
	}
	if details := info.Lookup("details"); details.Exists() {
		out = append(out, "\n## Details")
		for _, p := range details.Pairs() {
			out = append(out, "- "+p.Key+": "+p.Value.Text())
		}
	}
	return strings.Join(out, "\n")
}
