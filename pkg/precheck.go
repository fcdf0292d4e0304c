package issvg

import (
	"bytes"

	"github.com/h2non/filetype"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// precheck looks for an <svg> root element in the first window bytes of data.
// It is a cheap rejection filter: passing it does not mean data is SVG.
// Only the XML declaration, processing instructions, comments, DOCTYPE
// and whitespace may appear before the root tag.
func precheck(data []byte, window int) error {
	head := data
	if window > 0 && len(head) > window {
		head = head[:window]
	}

	if isKnownBinary(head) {
		return ErrBinary
	}

	head = bytes.TrimPrefix(head, utf8BOM)

	// the lexer writes a NULL terminator past len, so it never sees the caller's buffer.
	buf := make([]byte, len(head), len(head)+1)
	copy(buf, head)

	lexer := xml.NewLexer(parse.NewInputBytes(buf))
	for {
		tt, text := lexer.Next()
		switch tt {
		case xml.ErrorToken:
			return ErrNoSVGRoot
		case xml.TextToken:
			if len(bytes.TrimSpace(text)) != 0 {
				return ErrNoSVGRoot
			}
		case xml.StartTagToken:
			if !bytes.Equal(localName(lexer.Text()), []byte("svg")) {
				return ErrNoSVGRoot
			}

			return nil
		case xml.CDATAToken, xml.EndTagToken:
			return ErrNoSVGRoot
		}
	}
}

func isKnownBinary(head []byte) bool {
	return filetype.IsImage(head) ||
		filetype.IsVideo(head) ||
		filetype.IsAudio(head) ||
		filetype.IsArchive(head) ||
		filetype.IsFont(head) ||
		filetype.IsDocument(head)
}

// localName strips a namespace prefix ("svg:svg" -> "svg").
func localName(name []byte) []byte {
	if i := bytes.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}

	return name
}
