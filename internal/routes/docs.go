package routes

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"

	"github.com/priyankaj04/Gymlogs/internal/config"
)

//go:embed openapi.yaml
var openAPISpec []byte

const specContentType = "application/yaml; charset=utf-8"

type apiOperation struct {
	Summary  string                `yaml:"summary"`
	Tags     []string              `yaml:"tags"`
	Security []map[string][]string `yaml:"security"`
}

type apiPathItem struct {
	Get    *apiOperation `yaml:"get"`
	Post   *apiOperation `yaml:"post"`
	Put    *apiOperation `yaml:"put"`
	Delete *apiOperation `yaml:"delete"`
}

type apiDocument struct {
	Info struct {
		Title   string `yaml:"title"`
		Version string `yaml:"version"`
	} `yaml:"info"`
	Paths map[string]apiPathItem `yaml:"paths"`
}

// endpoint is one row of the docs index.
type endpoint struct {
	Method  string
	Path    string
	Summary string
	Auth    bool
}

type endpointGroup struct {
	Tag       string
	Endpoints []endpoint
}

func parseAPIDocument(spec []byte) (*apiDocument, error) {
	var doc apiDocument
	if err := yaml.Unmarshal(spec, &doc); err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	if len(doc.Paths) == 0 {
		return nil, fmt.Errorf("openapi document has no paths")
	}
	return &doc, nil
}

// groups returns the operations grouped by their first tag, untagged ones
// under "general", with groups and rows in a stable order.
func (d *apiDocument) groups() []endpointGroup {
	byTag := make(map[string][]endpoint)
	for path, item := range d.Paths {
		for _, op := range []struct {
			method string
			op     *apiOperation
		}{
			{fiber.MethodGet, item.Get},
			{fiber.MethodPost, item.Post},
			{fiber.MethodPut, item.Put},
			{fiber.MethodDelete, item.Delete},
		} {
			if op.op == nil {
				continue
			}
			tag := "general"
			if len(op.op.Tags) > 0 {
				tag = op.op.Tags[0]
			}
			byTag[tag] = append(byTag[tag], endpoint{
				Method:  op.method,
				Path:    path,
				Summary: op.op.Summary,
				Auth:    len(op.op.Security) > 0,
			})
		}
	}

	groups := make([]endpointGroup, 0, len(byTag))
	for tag, endpoints := range byTag {
		sort.Slice(endpoints, func(i, j int) bool {
			if endpoints[i].Path != endpoints[j].Path {
				return endpoints[i].Path < endpoints[j].Path
			}
			return methodRank(endpoints[i].Method) < methodRank(endpoints[j].Method)
		})
		groups = append(groups, endpointGroup{Tag: tag, Endpoints: endpoints})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Tag < groups[j].Tag })
	return groups
}

func methodRank(method string) int {
	return strings.Index("GET POST PUT DELETE", method)
}

var docsIndex = template.Must(template.New("docs").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }} {{ .Version }}</title>
<style>
body { font: 15px/1.5 system-ui, sans-serif; margin: 2rem auto; max-width: 960px; padding: 0 1rem; color: #1f2933; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1.5rem; }
td, th { border-bottom: 1px solid #e4e7eb; padding: .35rem .5rem; text-align: left; }
.m { font: 600 12px monospace; }
.lock { color: #b44d12; }
</style>
</head>
<body>
<h1>{{ .Title }} <small>{{ .Version }}</small></h1>
<p>Bodies are wrapped in <code>data</code>; failures carry <code>error</code> and <code>message</code>. Rows marked with a lock need a bearer token. The full description is at <a href="/docs/openapi.yaml">/docs/openapi.yaml</a>.</p>
{{ range .Groups }}<h2>{{ .Tag }}</h2>
<table>
<tr><th>Method</th><th>Path</th><th>Summary</th><th></th></tr>
{{ range .Endpoints }}<tr><td class="m">{{ .Method }}</td><td><code>{{ .Path }}</code></td><td>{{ .Summary }}</td><td>{{ if .Auth }}<span class="lock">lock</span>{{ end }}</td></tr>
{{ end }}</table>
{{ end }}</body>
</html>
`))

// docsHeaders keeps the docs out of caches, frames and search indexes.
func docsHeaders(c *fiber.Ctx) error {
	for header, value := range map[string]string{
		fiber.HeaderCacheControl:        "no-store",
		fiber.HeaderXContentTypeOptions: "nosniff",
		fiber.HeaderXFrameOptions:       "DENY",
		fiber.HeaderReferrerPolicy:      "no-referrer",
		"X-Robots-Tag":                  "noindex, nofollow",
	} {
		c.Set(header, value)
	}
	return c.Next()
}

// registerDocsRoutes serves an endpoint index and the raw OpenAPI document
// when docs are enabled for this environment.
func registerDocsRoutes(app fiber.Router, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}

	doc, err := parseAPIDocument(openAPISpec)
	if err != nil {
		return err
	}
	var page bytes.Buffer
	err = docsIndex.Execute(&page, map[string]any{
		"Title":   doc.Info.Title,
		"Version": doc.Info.Version,
		"Groups":  doc.groups(),
	})
	if err != nil {
		return fmt.Errorf("render docs index: %w", err)
	}
	index := page.Bytes()

	docs := app.Group("/docs", docsHeaders)
	docs.Get("/", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentSecurityPolicy, "default-src 'none'; style-src 'unsafe-inline'; frame-ancestors 'none'")
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(index)
	})
	docs.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentSecurityPolicy, "default-src 'none'; frame-ancestors 'none'")
		c.Set(fiber.HeaderContentType, specContentType)
		return c.Send(openAPISpec)
	})
	return nil
}
