// Package report renders tuning outcomes as a text table, JSON or a
// standalone HTML page with before/after swatches.
package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/jmylchreest/legible/internal/colour"
)

// Format selects a report encoding.
type Format int

const (
	// FormatText renders a plain-text table.
	FormatText Format = iota
	// FormatJSON renders indented JSON.
	FormatJSON
	// FormatHTML renders a standalone HTML page.
	FormatHTML
)

// ParseFormat maps a format name to a Format. The empty string selects
// FormatText.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "html":
		return FormatHTML, nil
	default:
		return FormatText, fmt.Errorf("unknown report format %q (expected text, json or html)", s)
	}
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatHTML:
		return "html"
	default:
		return "text"
	}
}

// Entry is one checked or tuned pair together with where it came from.
// File, Line and Selector are empty for pairs given directly on the
// command line.
type Entry struct {
	Selector string        `json:"selector,omitempty"`
	File     string        `json:"file,omitempty"`
	Line     int           `json:"line,omitempty"`
	Result   colour.Result `json:"result"`
	Err      string        `json:"error,omitempty"`
}

// Write renders the entries to w in the given format.
func Write(w io.Writer, f Format, entries []Entry) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatHTML:
		return writeHTML(w, entries)
	default:
		return writeText(w, entries)
	}
}

func writeText(w io.Writer, entries []Entry) error {
	t := NewTable("PAIR", "ORIGINAL", "TUNED", "RATIO", "LEVEL", "DELTA-E", "STATUS")
	t.SetColumnMaxWidth(0, 32)
	t.SetColumnMaxWidth(6, 40)

	for _, e := range entries {
		name := e.Selector
		if e.File != "" {
			name = fmt.Sprintf("%s:%d %s", e.File, e.Line, e.Selector)
		}

		if e.Err != "" {
			t.AddRow(name, "", "", "", "", "", "error: "+e.Err)
			continue
		}

		r := e.Result
		t.AddRow(
			name,
			r.Original.Hex(),
			r.Tuned.Hex(),
			fmt.Sprintf("%.2f", r.Ratio),
			r.Level.String(),
			fmt.Sprintf("%.2f", r.DeltaE),
			r.Status.String(),
		)
	}

	_, err := io.WriteString(w, t.Render())
	return err
}

func writeJSON(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// card is the view model for one HTML comparison block.
type card struct {
	Selector    string
	Source      string
	Background  string
	Before      string
	After       string
	BeforeBadge badge
	AfterBadge  badge
	Err         string
}

type badge struct {
	Label string
	Class string
}

func levelBadge(l colour.Level) badge {
	switch l {
	case colour.LevelAAA:
		return badge{Label: "Very Readable", Class: "badge-pass"}
	case colour.LevelAA:
		return badge{Label: "Readable", Class: "badge-pass"}
	default:
		return badge{Label: "Not Readable", Class: "badge-fail"}
	}
}

func writeHTML(w io.Writer, entries []Entry) error {
	cards := make([]card, 0, len(entries))
	for _, e := range entries {
		c := card{
			Selector: e.Selector,
			Err:      e.Err,
		}
		if c.Selector == "" {
			c.Selector = "Colour Pair"
		}
		if e.File != "" {
			c.Source = fmt.Sprintf("%s:%d", e.File, e.Line)
		} else {
			c.Source = "Manual Check"
		}
		if e.Err == "" {
			r := e.Result
			c.Background = r.Background.Hex()
			c.Before = r.Original.Hex()
			c.After = r.Tuned.Hex()
			c.BeforeBadge = levelBadge(r.OriginalLevel)
			c.AfterBadge = levelBadge(r.Level)
		}
		cards = append(cards, c)
	}

	return htmlTmpl.Execute(w, cards)
}

var htmlTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Legible Report</title>
<style>
  :root { --bg: #f9f9f9; --text: #333333; --card: #ffffff; --accent: #2c3e50; }
  body { font-family: sans-serif; background: var(--bg); color: var(--text);
         margin: 0; padding: 40px; line-height: 1.6; }
  .container { max-width: 900px; margin: 0 auto; }
  header { text-align: center; margin-bottom: 60px; }
  h1 { color: var(--accent); margin-bottom: 10px; }
  .subtitle { opacity: 0.7; }
  .card { background: var(--card); border-radius: 12px; padding: 30px;
          margin-bottom: 30px; box-shadow: 0 4px 20px rgba(0,0,0,0.05); }
  .card-header { border-bottom: 1px solid #eeeeee; margin-bottom: 20px;
                 padding-bottom: 15px; }
  .selector { font-family: monospace; font-weight: 700; color: var(--accent); }
  .source { font-size: 0.9rem; color: #666666; }
  .comparison { display: flex; gap: 20px; align-items: stretch; }
  .swatch { flex: 1; border-radius: 8px; padding: 20px; text-align: center;
            min-height: 120px; border: 1px solid rgba(0,0,0,0.1); }
  .sample { font-size: 1.5rem; font-weight: 700; }
  .code { font-family: monospace; font-size: 0.9rem; opacity: 0.8; }
  .badge { display: inline-block; padding: 4px 8px; border-radius: 4px;
           font-size: 0.8rem; font-weight: bold; margin-top: 10px; }
  .badge-fail { background: #ffebee; color: #c62828; }
  .badge-pass { background: #e8f5e9; color: #2e7d32; }
  .arrow { display: flex; align-items: center; font-size: 2rem; color: #cccccc; }
  .error { color: #c62828; font-family: monospace; }
  footer { text-align: center; margin-top: 60px; color: #555555; }
</style>
</head>
<body>
<div class="container">
<header>
  <h1>Legible Report</h1>
  <div class="subtitle">Readability Fixes</div>
</header>
<main>
{{- if not .}}
  <div class="card" style="text-align: center;">
    <h3>Nothing to report</h3>
    <p>No colour pairs were checked.</p>
  </div>
{{- end}}
{{- range .}}
  <div class="card">
    <div class="card-header">
      <div class="selector">{{.Selector}}</div>
      <div class="source">{{.Source}}</div>
    </div>
{{- if .Err}}
    <div class="error">{{.Err}}</div>
{{- else}}
    <div class="comparison">
      <div class="swatch" style="background-color: {{.Background}}; color: {{.Before}};">
        <div class="sample">Sample Text</div>
        <div class="code">{{.Before}}</div>
        <div class="badge {{.BeforeBadge.Class}}">{{.BeforeBadge.Label}}</div>
      </div>
      <div class="arrow">&#8594;</div>
      <div class="swatch" style="background-color: {{.Background}}; color: {{.After}};">
        <div class="sample">Sample Text</div>
        <div class="code">{{.After}}</div>
        <div class="badge {{.AfterBadge.Class}}">{{.AfterBadge.Label}}</div>
      </div>
    </div>
{{- end}}
  </div>
{{- end}}
</main>
<footer>Generated by legible</footer>
</div>
</body>
</html>
`))
