package preview

import "html/template"

var pageTemplate = template.Must(template.New("index").Parse(indexPage))

func init() {
	template.Must(pageTemplate.New("view").Parse(viewPage))
}

const indexPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>tablecheck</title></head>
<body>
<h1>Documents</h1>
<ul>
{{range .Documents}}<li><a href="/view/{{.}}">{{.}}</a></li>
{{else}}<li>No Markdown documents found.</li>
{{end}}</ul>
</body>
</html>`

const viewPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
</style>
</head>
<body>
<p><a href="/docs">Documents</a> / {{.Document}}</p>
{{.Body}}
<script>
document.addEventListener("change", function (ev) {
  var box = ev.target;
  if (!box.classList || !box.classList.contains("task-list-item-checkbox")) {
    return;
  }
  fetch("/api/toggle", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({
      document: box.dataset.document,
      line: parseInt(box.dataset.line, 10),
      index: parseInt(box.dataset.index, 10),
      checked: box.checked
    })
  }).then(function (resp) {
    if (!resp.ok) {
      console.warn("tablecheck: toggle failed with status " + resp.status);
    }
  }).catch(function (err) {
    console.warn("tablecheck: toggle failed", err);
  });
});
</script>
</body>
</html>`
