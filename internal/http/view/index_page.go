package view

import (
	"bytes"
	"html/template"
)

// IndexPageData provides the dynamic fields of the index page.
type IndexPageData struct {
	Title string
}

var indexPageTmpl = template.Must(template.New("index_page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1" />
	<title>{{.Title}}</title>
	<style>
		:root {
			--bg: #090a0f;
			--card: rgba(255, 255, 255, 0.05);
			--border: rgba(255, 255, 255, 0.15);
			--text: #e7ecff;
			--muted: #a1acc5;
			--accent: #7dd3fc;
		}
		* { box-sizing: border-box; }
		body {
			margin: 0;
			min-height: 100vh;
			display: flex;
			align-items: center;
			justify-content: center;
			font-family: system-ui, -apple-system, "Segoe UI", Roboto, sans-serif;
			background: var(--bg);
			color: var(--text);
		}
		main {
			width: min(560px, 92vw);
			padding: 2rem;
			border: 1px solid var(--border);
			border-radius: 16px;
			background: var(--card);
		}
		h1 { margin: 0 0 1rem; font-size: 1.4rem; }
		form { display: flex; gap: .5rem; }
		input {
			flex: 1;
			padding: .75rem;
			border-radius: 8px;
			border: 1px solid var(--border);
			background: transparent;
			color: var(--text);
		}
		button {
			padding: .75rem 1.1rem;
			border: 0;
			border-radius: 8px;
			background: var(--accent);
			color: #04121b;
			font-weight: 600;
			cursor: pointer;
		}
		#result { margin-top: 1rem; color: var(--muted); word-break: break-all; }
		#result a { color: var(--accent); }
	</style>
</head>
<body>
	<main>
		<h1>{{.Title}}</h1>
		<form id="shorten-form">
			<input id="url" name="url" type="url" placeholder="https://example.com/some/long/path" required />
			<button type="submit">Shorten</button>
		</form>
		<div id="result"></div>
	</main>
	<script>
		(function () {
			var form = document.getElementById("shorten-form");
			var result = document.getElementById("result");
			form.addEventListener("submit", function (ev) {
				ev.preventDefault();
				result.textContent = "";
				fetch("/shorten", {
					method: "POST",
					headers: { "Content-Type": "application/json" },
					body: JSON.stringify({ url: document.getElementById("url").value })
				}).then(function (res) {
					return res.json().then(function (data) { return { ok: res.ok, data: data }; });
				}).then(function (r) {
					if (!r.ok) {
						result.textContent = r.data.error || "Request failed";
						return;
					}
					var short = window.location.origin + "/" + r.data.short_id;
					var link = document.createElement("a");
					link.href = short;
					link.textContent = short;
					var stats = document.createElement("a");
					stats.href = "/stats/" + r.data.short_id;
					stats.textContent = "stats";
					result.appendChild(link);
					result.appendChild(document.createTextNode(" · "));
					result.appendChild(stats);
				}).catch(function () {
					result.textContent = "Request failed";
				});
			});
		})();
	</script>
</body>
</html>
`))

// RenderIndexPage expands the index template.
func RenderIndexPage(data IndexPageData) (string, error) {
	if data.Title == "" {
		data.Title = "Shorten a link"
	}
	var buf bytes.Buffer
	if err := indexPageTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
