package checkbox

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Reader reads the full text of a document.
type Reader interface {
	Read(ctx context.Context, doc string) (string, error)
}

// Writer replaces the full text of a document.
type Writer interface {
	Write(ctx context.Context, doc string, content string) error
}

// Store is a document store with separate read and write primitives.
type Store interface {
	Reader
	Writer
}

// Transformer is implemented by stores that can read, rewrite and write a
// document as one step. ApplyToggle prefers it over Read followed by Write.
type Transformer interface {
	Transform(ctx context.Context, doc string, fn func(content string) string) error
}

// RenderContext describes where a rendered tree came from.
type RenderContext interface {
	// SectionInfo returns the source span of the fragment containing n, or
	// nil when it is unknown.
	SectionInfo(n *html.Node) *SectionInfo
	// ActiveDocument returns the identity of the document being rendered.
	ActiveDocument() (string, bool)
}

// Option configures Process and ApplyToggle.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	factory ControlFactory
}

// WithLogger sets the logger used for debug output. Skipped rows, cells and
// toggles are only ever logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithControlFactory overrides how checkbox controls are built.
func WithControlFactory(f ControlFactory) Option {
	return func(o *options) {
		if f != nil {
			o.factory = f
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:  zap.NewNop(),
		factory: InputFactory{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
