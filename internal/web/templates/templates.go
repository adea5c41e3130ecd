// Package templates holds the server-rendered HTML components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// ErrorAlert renders the error fragment swapped in by HTMX requests.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="alert alert-error" role="alert"><strong>%s</strong>`,
			templ.EscapeString(message))
		if err != nil {
			return err
		}
		if action != "" {
			if _, err := fmt.Fprintf(w, `<p>%s</p>`, templ.EscapeString(action)); err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(w, `<small>Code: %s</small></div>`, templ.EscapeString(code))
		return err
	})
}

// Index renders the upload page. maxUpload is shown as the size ceiling.
func Index(maxUpload string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, indexPage, templ.EscapeString(maxUpload))
		return err
	})
}

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>graphtool</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 56rem; }
fieldset { margin-bottom: 1rem; }
label { display: block; margin: .3rem 0; }
.alert-error { border: 1px solid #c00; padding: .5rem; color: #900; }
[hidden] { display: none; }
</style>
</head>
<body>
<h1>graphtool</h1>

<form id="upload">
<fieldset>
<legend>1. Upload</legend>
<input type="file" name="file" accept=".csv,.txt,.log,.json,.zip" required>
<small>Up to %s. CSV, delimited text, JSON or a zip archive.</small>
<button type="submit">Upload</button>
</fieldset>
</form>
<div id="status"></div>

<form id="chart" method="post" target="_blank" hidden>
<fieldset>
<legend>2. Chart</legend>
<label>Type
<select name="graph_type">
<option value="scatter">Scatter</option>
<option value="single_line">Line</option>
<option value="dual_line">Dual axis line</option>
<option value="scatter_on_map">Scatter on map</option>
</select></label>
<label>Title <input name="title"></label>
<label>X column <select name="x_column" data-columns></select></label>
<label>Y columns <select name="y_columns" multiple data-numeric></select></label>
<label>Left axis columns <select name="y1_columns" multiple data-numeric></select></label>
<label>Right axis columns <select name="y2_columns" multiple data-numeric></select></label>
<label>Latitude <select name="latitude_column" data-numeric data-optional></select></label>
<label>Longitude <select name="longitude_column" data-numeric data-optional></select></label>
<label>Hover columns <select name="hover_columns" multiple data-columns></select></label>
<label>Color column <select name="color_column" data-numeric data-optional></select></label>
<label>Size column <select name="size_column" data-numeric data-optional></select></label>
<label>Theme <select name="light_mode"><option value="true">Light</option><option value="false">Dark</option></select></label>
<button type="submit">Open chart</button>
</fieldset>
</form>

<form id="process" method="post" hidden>
<fieldset>
<legend>3. Process</legend>
<label>Operation
<select name="process_type">
<option value="summary">Summary</option>
<option value="filter">Filter</option>
<option value="stats">Statistics</option>
<option value="clean">Clean</option>
</select></label>
<label>Summary <select name="summary_type">
<option value="basic">Basic</option><option value="quality">Quality</option><option value="columns">Columns</option>
</select></label>
<label>Filter column <select name="filter_column" data-columns data-optional></select></label>
<label>Filter value <input name="filter_value"></label>
<label>Statistics <select name="stats_ops" multiple>
<option value="mean" selected>Mean</option><option value="median" selected>Median</option>
<option value="std">Standard deviation</option><option value="minmax">Min/Max</option>
</select></label>
<label>Cleaning <select name="clean_ops" multiple>
<option value="duplicates" selected>Duplicates</option><option value="empty" selected>Empty rows</option>
<option value="text">Text</option><option value="types">Types</option>
</select></label>
<button type="submit">Download result</button>
<a id="export">Download dataset</a>
</fieldset>
</form>

<script>
const status = document.getElementById("status");

function fill(sel, names) {
  sel.innerHTML = "";
  if (sel.hasAttribute("data-optional")) sel.add(new Option("", ""));
  names.forEach(n => sel.add(new Option(n, n)));
}

document.getElementById("upload").addEventListener("submit", async (ev) => {
  ev.preventDefault();
  status.textContent = "Uploading...";
  const resp = await fetch("/api/upload", { method: "POST", body: new FormData(ev.target) });
  const body = await resp.json();
  if (!resp.ok) {
    status.innerHTML = "";
    status.append(body.message + " (" + body.code + "). " + (body.action || ""));
    return;
  }
  const base = "/api/datasets/" + encodeURIComponent(body.dataset_id);
  status.textContent = body.file_name + ": " + body.row_count + " rows, " + body.columns.length + " columns" +
    (body.low_confidence ? " (delimiter guessed, check the columns)" : "");
  document.querySelectorAll("[data-columns]").forEach(s => fill(s, body.columns));
  document.querySelectorAll("[data-numeric]").forEach(s => fill(s, body.numeric_columns));
  const chart = document.getElementById("chart");
  chart.action = base + "/chart/html";
  chart.hidden = false;
  const proc = document.getElementById("process");
  proc.action = base + "/process";
  proc.hidden = false;
  document.getElementById("export").href = base + "/export";
});
</script>
</body>
</html>
`
