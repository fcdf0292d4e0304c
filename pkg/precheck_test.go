package issvg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrecheck(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"bare root", `<svg>`, nil},
		{"prefixed root", `<svg:svg xmlns:svg="http://www.w3.org/2000/svg">`, nil},
		{"declaration", `<?xml version="1.0" encoding="UTF-8"?><svg>`, nil},
		{"bom", "\xef\xbb\xbf<svg>", nil},
		{"stylesheet pi", `<?xml-stylesheet href="a.css" type="text/css"?>` + "\n<svg>", nil},
		{"doctype with subset", `<!DOCTYPE svg [ <!ATTLIST svg foo CDATA "a"> ]><svg>`, nil},
		{"comment", "<!-- <html> -->\n<svg>", nil},
		{"empty", ``, ErrNoSVGRoot},
		{"text", `hello <svg>`, ErrNoSVGRoot},
		{"html", `<!DOCTYPE html><html>`, ErrNoSVGRoot},
		{"svg-like name", `<svgfoo>`, ErrNoSVGRoot},
		{"end tag first", `</svg>`, ErrNoSVGRoot},
		{"cdata first", `<![CDATA[x]]><svg>`, ErrNoSVGRoot},
		{"png", "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR", ErrBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := precheck([]byte(tt.data), DefaultWindow)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestPrecheckWindow(t *testing.T) {
	data := []byte("<!-- 0123456789 -->\n<svg>")

	assert.NoError(t, precheck(data, 0))
	assert.NoError(t, precheck(data, len(data)))
	assert.ErrorIs(t, precheck(data, 10), ErrNoSVGRoot)
}

func TestLocalName(t *testing.T) {
	assert.Equal(t, "svg", string(localName([]byte("svg"))))
	assert.Equal(t, "svg", string(localName([]byte("svg:svg"))))
	assert.Equal(t, "", string(localName([]byte("svg:"))))
}
