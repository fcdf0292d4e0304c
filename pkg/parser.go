package issvg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/rustyoz/svg"
)

// SVGNamespace is the namespace of SVG elements.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Parser is the authoritative check run on data that passed the pre-check.
// Implementations must not touch the filesystem or network.
type Parser interface {
	Parse(data []byte) (*Document, error)
}

// Document describes a document accepted by a Parser.
type Document struct {
	Root                   xml.Name
	Width, Height, ViewBox string
	// Elements is the number of elements in the tree (root included).
	Elements int
	// Depth is the deepest element nesting level (root is 1).
	Depth int
	// Compressed is set by the Classifier for gzip-compressed input.
	Compressed bool
}

var _ Parser = &SVGParser{}

// SVGParser checks well-formedness and the root element with a strict
// XML token walk and then hands the document to github.com/rustyoz/svg.
// Entities are never expanded and external resources are never resolved.
type SVGParser struct {
	maxDepth int
}

// NewSVGParser creates SVGParser with default limits.
func NewSVGParser() *SVGParser {
	return &SVGParser{
		maxDepth: DefaultMaxDepth,
	}
}

// MaxDepth sets the maximum element nesting (0 = unlimited).
func (p *SVGParser) MaxDepth(depth int) *SVGParser {
	p.maxDepth = depth
	return p
}

// Parse implements Parser.
func (p *SVGParser) Parse(data []byte) (*Document, error) {
	// 0.0: only UTF-8 is supported
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, ErrNotUTF8
	}

	// 1.0: structure
	doc, err := p.walk(data)
	if err != nil {
		return nil, err
	}

	// 2.0: unmarshal svg
	// 2nd arg is a drawing name and 3rd is the scale; neither matters here
	if _, err := svg.ParseSvg(string(dropLengths(data)), "", 1); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return doc, nil
}

func (p *SVGParser) walk(data []byte) (*Document, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = true

	doc := &Document{}
	depth := 0
	seenRoot := false

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if depth == 0 {
				if seenRoot {
					return nil, fmt.Errorf("%w: second root element <%s>", ErrTrailingContent, tok.Name.Local)
				}

				if err := checkRoot(tok.Name); err != nil {
					return nil, err
				}

				seenRoot = true
				doc.Root = tok.Name
				doc.Width = attr(tok, "width")
				doc.Height = attr(tok, "height")
				doc.ViewBox = attr(tok, "viewBox")
			}

			depth++
			doc.Elements++

			if depth > doc.Depth {
				doc.Depth = depth
			}

			if p.maxDepth > 0 && depth > p.maxDepth {
				return nil, fmt.Errorf("%w: limit is %d", ErrTooDeep, p.maxDepth)
			}
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth > 0 || len(bytes.TrimSpace(tok)) == 0 {
				continue
			}

			if seenRoot {
				return nil, ErrTrailingContent
			}

			return nil, fmt.Errorf("%w: text before root element", ErrMalformed)
		case xml.Directive:
			if bytes.Contains(tok, []byte("<!ENTITY")) || bytes.HasPrefix(tok, []byte("ENTITY")) {
				return nil, ErrEntityDeclaration
			}
		}
	}

	if !seenRoot {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}

	if depth != 0 {
		return nil, fmt.Errorf("%w: unclosed elements", ErrMalformed)
	}

	return doc, nil
}

func checkRoot(name xml.Name) error {
	if name.Local != "svg" {
		return fmt.Errorf("%w: got <%s>", ErrWrongRoot, name.Local)
	}

	if name.Space != SVGNamespace {
		return fmt.Errorf("%w: namespace %q", ErrWrongRoot, name.Space)
	}

	return nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value
		}
	}

	return ""
}

// lengthAttr matches attributes that github.com/rustyoz/svg decodes as float64
// (circle cx, cy and r; stroke-width and opacity of g and path).
var lengthAttr = regexp.MustCompile(`\s(cx|cy|r|stroke-width|opacity)\s*=\s*("[^"]*"|'[^']*')`)

// dropLengths removes the attributes matched by lengthAttr whose value is not
// a plain number ("50%", "2px"). Such values are valid CSS and do not make
// a document invalid. data is not modified.
func dropLengths(data []byte) []byte {
	return lengthAttr.ReplaceAllFunc(data, func(match []byte) []byte {
		sub := lengthAttr.FindSubmatch(match)
		value := sub[2][1 : len(sub[2])-1]

		if _, err := strconv.ParseFloat(string(value), 64); err == nil {
			return match
		}

		return nil
	})
}
