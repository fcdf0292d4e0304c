package issvg

import "errors"

var (
	ErrEmpty             = errors.New("empty input")
	ErrTooLarge          = errors.New("input exceeds size limit")
	ErrBinary            = errors.New("input is a known binary format")
	ErrNoSVGRoot         = errors.New("no <svg> root element in scan window")
	ErrNotUTF8           = errors.New("input is not valid UTF-8")
	ErrMalformed         = errors.New("malformed document")
	ErrWrongRoot         = errors.New("root element is not svg")
	ErrTrailingContent   = errors.New("content after root element")
	ErrTooDeep           = errors.New("elements nested too deeply")
	ErrEntityDeclaration = errors.New("DTD entity declarations are not supported")
	ErrCompression       = errors.New("invalid gzip stream")
	ErrNestedCompression = errors.New("nested gzip compression")
	ErrSVGZDisabled      = errors.New("gzip-compressed input is disabled")
	ErrParserPanic       = errors.New("parser panicked")
)
