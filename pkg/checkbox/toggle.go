package checkbox

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Result reports what a toggle did. Every result other than Applied is an
// expected, silent outcome.
type Result int

const (
	Applied              Result = iota
	SkippedLineMissing          // the target line no longer exists
	SkippedIndexMismatch        // the line has no checkbox with the target index
	SkippedUnavailable          // the document could not be read
)

func (r Result) String() string {
	switch r {
	case Applied:
		return "applied"
	case SkippedLineMissing:
		return "skipped: line missing"
	case SkippedIndexMismatch:
		return "skipped: index mismatch"
	case SkippedUnavailable:
		return "skipped: document unavailable"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// ParseResult parses the String form of a Result.
func ParseResult(s string) (Result, error) {
	for r := Applied; r <= SkippedUnavailable; r++ {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown toggle result %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Result) UnmarshalText(text []byte) error {
	parsed, err := ParseResult(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Target addresses one rendered checkbox: the document, the 0-based source
// line of its table row, and its global index within that line.
type Target struct {
	Document string `json:"document"`
	Line     int    `json:"line"`
	Index    int    `json:"index"`
}

// Patch sets checkbox index on the given line of content to checked. Only
// the three bytes of that token change; line endings and every other byte
// are preserved. When the line or the token does not exist content is
// returned unchanged together with the matching skip result.
func Patch(content string, line, index int, checked bool) (string, Result) {
	start, end, ok := lineSpan(content, line)
	if !ok {
		return content, SkippedLineMissing
	}

	tokens := Scan(content[start:end])
	if index < 0 || index >= len(tokens) {
		return content, SkippedIndexMismatch
	}

	at := start + tokens[index].Offset
	return content[:at] + Bracket(checked) + content[at+tokenLen:], Applied
}

// ApplyToggle sets the target checkbox to checked in the live document.
// The target line is re-scanned at call time, so edits made since the
// checkbox was rendered are never overwritten with stale text.
//
// When store implements Transformer the read-modify-write happens in one
// store call. Otherwise the document is read and written separately and a
// concurrent edit between the two calls can be lost.
//
// A non-nil error is only returned when writing the document failed.
func ApplyToggle(ctx context.Context, store Store, target Target, checked bool, opts ...Option) (Result, error) {
	o := newOptions(opts)
	log := o.logger.With(
		zap.String("document", target.Document),
		zap.Int("line", target.Line),
		zap.Int("index", target.Index),
		zap.Bool("checked", checked),
	)

	if t, ok := store.(Transformer); ok {
		var (
			result = SkippedUnavailable
			called bool
		)
		err := t.Transform(ctx, target.Document, func(content string) string {
			called = true
			var patched string
			patched, result = Patch(content, target.Line, target.Index, checked)
			return patched
		})
		if err != nil {
			if !called {
				log.Debug("toggle skipped", zap.Stringer("result", SkippedUnavailable), zap.Error(err))
				return SkippedUnavailable, nil
			}
			return result, fmt.Errorf("failed to write %s: %w", target.Document, err)
		}
		log.Debug("toggle finished", zap.Stringer("result", result))
		return result, nil
	}

	content, err := store.Read(ctx, target.Document)
	if err != nil {
		log.Debug("toggle skipped", zap.Stringer("result", SkippedUnavailable), zap.Error(err))
		return SkippedUnavailable, nil
	}

	patched, result := Patch(content, target.Line, target.Index, checked)
	if result != Applied {
		log.Debug("toggle skipped", zap.Stringer("result", result))
		return result, nil
	}

	if err := store.Write(ctx, target.Document, patched); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", target.Document, err)
	}
	log.Debug("toggle finished", zap.Stringer("result", result))
	return result, nil
}
