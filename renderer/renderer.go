// Package renderer renders documentation templates with a configurable
// engine. The engines are html (html/template, the default), text
// (text/template), and mustache (github.com/cbroglie/mustache).
//
// The html and text engines receive the helper functions as template
// functions. The mustache engine receives them as lambdas under the
// "helpers" key of the render context.
package renderer

import (
	"bytes"
	htmltemplate "html/template"
	"path/filepath"
	"slices"
	texttemplate "text/template"

	"github.com/cbroglie/mustache"

	"github.com/erraggy/ramldoc/helpers"
	"github.com/erraggy/ramldoc/parser"
	"github.com/erraggy/ramldoc/ramlerrors"
)

// Engine names accepted by New.
const (
	EngineHTML     = "html"
	EngineText     = "text"
	EngineMustache = "mustache"
)

// DefaultEngine is used when no engine is configured.
const DefaultEngine = EngineHTML

// Engines returns the supported engine names.
func Engines() []string {
	return []string{EngineHTML, EngineText, EngineMustache}
}

// Renderer renders template files with one engine. It is safe for
// concurrent use.
type Renderer struct {
	engine string
	funcs  htmltemplate.FuncMap
	logger parser.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHelpers adds template functions, replacing built-in helpers of the
// same name. The mustache engine only uses functions with the mustache
// lambda signature.
func WithHelpers(fns map[string]any) Option {
	return func(r *Renderer) {
		r.funcs = helpers.FuncMap(fns)
	}
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(l parser.Logger) Option {
	return func(r *Renderer) {
		r.logger = l
	}
}

// New returns a Renderer for engine. An empty engine selects DefaultEngine;
// an unknown one is a *ramlerrors.ConfigError.
func New(engine string, opts ...Option) (*Renderer, error) {
	if engine == "" {
		engine = DefaultEngine
	}
	if !slices.Contains(Engines(), engine) {
		return nil, &ramlerrors.ConfigError{
			Option:  "template.engine",
			Value:   engine,
			Message: "unknown template engine",
		}
	}
	r := &Renderer{engine: engine, funcs: helpers.FuncMap(nil)}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = parser.LoggerOrNop(r.logger)
	return r, nil
}

// Engine returns the engine name.
func (r *Renderer) Engine() string { return r.engine }

// RenderFile renders the template in file with data. Failures, including an
// unreadable template, are returned as *ramlerrors.RenderError.
func (r *Renderer) RenderFile(file string, data map[string]any) (string, error) {
	r.logger.Debug("rendering template", "engine", r.engine, "template", file)
	var (
		out string
		err error
	)
	switch r.engine {
	case EngineHTML:
		out, err = r.renderHTML(file, data)
	case EngineText:
		out, err = r.renderText(file, data)
	default:
		out, err = r.renderMustache(file, data)
	}
	if err != nil {
		return "", &ramlerrors.RenderError{Engine: r.engine, Template: file, Cause: err}
	}
	return out, nil
}

func (r *Renderer) renderHTML(file string, data map[string]any) (string, error) {
	tmpl, err := htmltemplate.New(filepath.Base(file)).Funcs(r.funcs).ParseFiles(file)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) renderText(file string, data map[string]any) (string, error) {
	tmpl, err := texttemplate.New(filepath.Base(file)).Funcs(texttemplate.FuncMap(r.funcs)).ParseFiles(file)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) renderMustache(file string, data map[string]any) (string, error) {
	tmpl, err := mustache.ParseFilePartials(file, &mustache.FileProvider{
		Paths:      []string{filepath.Dir(file)},
		Extensions: []string{".mustache", ""},
	})
	if err != nil {
		return "", err
	}
	ctx := make(map[string]any, len(data)+1)
	for k, v := range data {
		ctx[k] = v
	}
	ctx["helpers"] = lambdas(r.funcs)
	return tmpl.Render(ctx)
}
