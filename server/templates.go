package server

import "html/template"

// 页面模板直接内嵌，部署只有一个二进制
const pagesHTML = `
{{define "head"}}
<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Background Remover</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; color: #333; }
.grid { display: flex; flex-wrap: wrap; gap: 1em; }
.card { border: 1px solid #ddd; padding: .5em; }
.card img { max-width: 200px; max-height: 200px; background: repeating-conic-gradient(#eee 0 25%, #fff 0 50%) 0 0/16px 16px; }
.error { color: #b00; }
nav a { margin-right: 1em; }
</style>
</head>
<body>
<nav><a href="/">Upload</a><a href="/gallery">Gallery</a></nav>
{{end}}

{{define "foot"}}
</body>
</html>
{{end}}

{{define "home"}}
{{template "head" .}}
<h1>Remove image background</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/" enctype="multipart/form-data">
<p><input type="file" name="image" accept="image/*" required></p>
<p>
<label><input type="radio" name="method" value="smart" checked> Smart (ensemble)</label>
<label><input type="radio" name="method" value="white" > White / uniform background</label>
<label><input type="radio" name="method" value="edge" > Edge based</label>
<label><input type="radio" name="method" value="color" > Color clustering</label>
</p>
<p><button type="submit">Remove background</button></p>
</form>
<h2>Or process an image by URL</h2>
<form method="post" action="/remote">
<p><input type="url" name="url" placeholder="https://example.com/photo.png" size="50" required>
<input type="hidden" name="method" value="smart">
<button type="submit">Fetch &amp; remove</button></p>
</form>
{{if .Recent}}
<h2>Recent</h2>
<div class="grid">
{{range .Recent}}
<div class="card"><a href="/result/{{.ID}}"><img src="/media/{{.ProcessedPath}}"></a></div>
{{end}}
</div>
{{end}}
{{template "foot" .}}
{{end}}

{{define "result"}}
{{template "head" .}}
<h1>Result ({{.Image.Method}})</h1>
<div class="grid">
<div class="card"><h3>Original</h3><img src="/media/{{.Image.OriginalPath}}"></div>
<div class="card"><h3>Processed</h3><img src="/media/{{.Image.ProcessedPath}}"></div>
</div>
<p><a href="/media/{{.Image.ProcessedPath}}" download>Download PNG</a></p>
{{template "foot" .}}
{{end}}

{{define "gallery"}}
{{template "head" .}}
<h1>Gallery</h1>
<div class="grid">
{{range .Images}}
<div class="card"><a href="/result/{{.ID}}"><img src="/media/{{.ProcessedPath}}"></a></div>
{{else}}
<p>Nothing processed yet.</p>
{{end}}
</div>
{{template "foot" .}}
{{end}}
`

func pageTemplates() *template.Template {
	return template.Must(template.New("pages").Parse(pagesHTML))
}
