package issvg

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// gzipMagic is the gzip member header defined in RFC 1952.
var gzipMagic = []byte{0x1f, 0x8b}

func isGzip(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}

// inflate decompresses a gzip stream. limit bounds the decompressed size (0 = unbounded).
func inflate(data []byte, limit int64) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}

	defer r.Close()

	var src io.Reader = r
	if limit > 0 {
		// one extra byte tells "exactly limit" apart from "more than limit"
		src = io.LimitReader(r, limit+1)
	}

	out, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}

	if limit > 0 && int64(len(out)) > limit {
		return nil, fmt.Errorf("%w: inflated data is larger than %d bytes", ErrTooLarge, limit)
	}

	return out, nil
}
