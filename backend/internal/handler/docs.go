package handler

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/meetiosdev/topics-api/shared/api"
	"github.com/meetiosdev/topics-api/shared/logger"
	"github.com/meetiosdev/topics-api/shared/utils"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed docs/openapi.yaml
var openAPI []byte

//go:embed docs/guide.md
var guideMarkdown []byte

var swaggerPage = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Topics API Documentation</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
  <style>.swagger-ui .topbar { display: none }</style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>window.ui = SwaggerUIBundle({ url: "{{.SpecURL}}", dom_id: "#swagger-ui" });</script>
</body>
</html>
`))

var guidePage = template.Must(template.New("guide").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Topics API Guide</title>
</head>
<body>
{{.}}
</body>
</html>
`))

type docs struct {
	swagger []byte
	guide   []byte
}

// newDocs renders the static documentation pages once.
func newDocs() *docs {
	d := &docs{}

	var buf bytes.Buffer
	if err := swaggerPage.Execute(&buf, struct{ SpecURL string }{"/api-docs/openapi.yaml"}); err != nil {
		logger.Log.Error("failed to render swagger page", "error", err)
	}
	d.swagger = buf.Bytes()

	guide, err := renderMarkdown(guideMarkdown)
	if err != nil {
		logger.Log.Error("failed to render guide", "error", err)
	}
	buf = bytes.Buffer{}
	if err := guidePage.Execute(&buf, template.HTML(guide)); err != nil {
		logger.Log.Error("failed to render guide page", "error", err)
	}
	d.guide = buf.Bytes()
	return d
}

// renderMarkdown converts markdown to html and strips anything unsafe.
func renderMarkdown(src []byte) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var out bytes.Buffer
	if err := md.Convert(src, &out); err != nil {
		return nil, err
	}
	return bluemonday.UGCPolicy().SanitizeBytes(out.Bytes()), nil
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	writeBytes(w, "text/html; charset=utf-8", h.docs.swagger)
}

func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	writeBytes(w, "application/yaml", openAPI)
}

func (h *Handler) Guide(w http.ResponseWriter, r *http.Request) {
	writeBytes(w, "text/html; charset=utf-8", h.docs.guide)
}

func writeBytes(w http.ResponseWriter, contentType string, body []byte) {
	if len(body) == 0 {
		utils.WriteJSON(w, http.StatusInternalServerError, api.Response{Error: "Documentation unavailable"})
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
