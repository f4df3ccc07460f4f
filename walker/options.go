package walker

import "github.com/erraggy/ramldoc/parser"

// Option configures the Walker.
type Option func(*Walker)

// WithScope sets the scope. Values other than ScopePrivate behave like
// ScopePublic.
func WithScope(scope Scope) Option {
	return func(w *Walker) {
		w.scope = scope
	}
}

// WithLogger sets the logger for diagnostics. Nil keeps the no-op logger.
func WithLogger(l parser.Logger) Option {
	return func(w *Walker) {
		w.logger = parser.LoggerOrNop(l)
	}
}

// WithResourceHandler sets the handler called for each kept resource.
func WithResourceHandler(fn ResourceHandler) Option {
	return func(w *Walker) { w.onResource = fn }
}

// WithMethodHandler sets the handler called for each kept method.
func WithMethodHandler(fn MethodHandler) Option {
	return func(w *Walker) { w.onMethod = fn }
}
