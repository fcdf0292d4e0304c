// Package issvg tells whether a given data is a valid SVG image.
//
// The check has two stages: a cheap lexical pre-check over the first bytes
// of the input, and a full parse of the document that only runs when the
// pre-check passes. gzip-compressed SVG (.svgz) is supported.
package issvg

import (
	"fmt"
)

const (
	// DefaultWindow is how many leading bytes the pre-check scans for the <svg> root tag.
	DefaultWindow = 16 << 10
	// DefaultMaxSize bounds raw input (and so HTTP request bodies).
	DefaultMaxSize = 64 << 20
	// DefaultMaxInflatedSize bounds decompressed .svgz content.
	DefaultMaxInflatedSize = 64 << 20
	// DefaultMaxDepth bounds element nesting.
	DefaultMaxDepth = 1024
)

// Classifier decides whether data is SVG.
// Configure it with the setters before use; after that it is read-only
// and may be shared between goroutines.
type Classifier struct {
	window          int
	maxSize         int64
	maxInflatedSize int64
	maxDepth        int
	noSVGZ          bool
	parser          Parser
}

// NewClassifier creates a Classifier with default limits and SVGParser.
func NewClassifier() *Classifier {
	return &Classifier{
		window:          DefaultWindow,
		maxSize:         DefaultMaxSize,
		maxInflatedSize: DefaultMaxInflatedSize,
		maxDepth:        DefaultMaxDepth,
	}
}

// Window sets the pre-check scan window (0 = whole input).
func (c *Classifier) Window(n int) *Classifier {
	c.window = n
	return c
}

// MaxSize sets the raw input limit (0 = unlimited).
func (c *Classifier) MaxSize(n int64) *Classifier {
	c.maxSize = n
	return c
}

// MaxInflatedSize sets the decompressed .svgz limit (0 = unlimited).
func (c *Classifier) MaxInflatedSize(n int64) *Classifier {
	c.maxInflatedSize = n
	return c
}

// MaxDepth sets nesting limit of the default parser (0 = unlimited).
// A parser given to WithParser keeps its own limits.
func (c *Classifier) MaxDepth(n int) *Classifier {
	c.maxDepth = n
	return c
}

// NoSVGZ makes the classifier reject gzip-compressed input.
func (c *Classifier) NoSVGZ() *Classifier {
	c.noSVGZ = true
	return c
}

// WithParser replaces the parser used after the pre-check.
// MaxDepth does not apply to p, whatever the call order.
// nil restores the default SVGParser.
func (c *Classifier) WithParser(p Parser) *Classifier {
	c.parser = p
	return c
}

// IsSVG returns true if data is a valid SVG (or .svgz) image.
func (c *Classifier) IsSVG(data []byte) bool {
	_, err := c.Check(data)
	return err == nil
}

// IsSVGString returns true if data is a valid SVG image that is not gzip-compressed.
func (c *Classifier) IsSVGString(data []byte) bool {
	return !isGzip(data) && c.IsSVG(data)
}

// IsSVGZ returns true if data is a valid gzip-compressed SVG image.
func (c *Classifier) IsSVGZ(data []byte) bool {
	return isGzip(data) && c.IsSVG(data)
}

// Check is IsSVG with diagnostics: it returns the parsed Document summary,
// or an error wrapping one of the Err* values in this package.
// data is neither modified nor retained.
func (c *Classifier) Check(data []byte) (*Document, error) {
	// 0.0: cheap limits
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	if c.maxSize > 0 && int64(len(data)) > c.maxSize {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, len(data), c.maxSize)
	}

	// 1.0: svgz
	compressed := isGzip(data)
	if compressed {
		if c.noSVGZ {
			return nil, ErrSVGZDisabled
		}

		inflated, err := inflate(data, c.maxInflatedSize)
		if err != nil {
			return nil, err
		}

		if len(inflated) == 0 {
			return nil, fmt.Errorf("svgz: %w", ErrEmpty)
		}

		if isGzip(inflated) {
			return nil, ErrNestedCompression
		}

		data = inflated
	}

	// 2.0: pre-check
	if err := precheck(data, c.window); err != nil {
		return nil, fmt.Errorf("precheck: %w", err)
	}

	// 3.0: parse
	doc, err := c.parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	doc.Compressed = compressed

	return doc, nil
}

func (c *Classifier) parse(data []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: %v", ErrParserPanic, r)
		}
	}()

	parser := c.parser
	if parser == nil {
		parser = NewSVGParser().MaxDepth(c.maxDepth)
	}

	doc, err = parser.Parse(data)
	if err == nil && doc == nil {
		doc = &Document{}
	}

	return doc, err
}

// IsSVG returns true if data is a valid SVG image. gzip-compressed SVG (.svgz)
// is accepted too. It never panics; every failure is reported as false.
func IsSVG(data []byte) bool {
	return NewClassifier().IsSVG(data)
}

// IsSVGString returns true if data is a valid SVG image and is not gzip-compressed.
func IsSVGString(data []byte) bool {
	return NewClassifier().IsSVGString(data)
}

// IsSVGZ returns true if data is a valid gzip-compressed SVG image.
func IsSVGZ(data []byte) bool {
	return NewClassifier().IsSVGZ(data)
}

// Check runs a default Classifier and reports why data was rejected.
func Check(data []byte) (*Document, error) {
	return NewClassifier().Check(data)
}
