package httpclient

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"golang.org/x/net/html/charset"
)

// AcceptEncoding is the Content-Encoding set decodeBody understands.
const AcceptEncoding = "gzip, deflate, br"

// decodeBody undoes Content-Encoding, applies the size cap and transcodes
// the result to UTF-8.
func decodeBody(resp *http.Response, maxBytes int64) ([]byte, error) {
	reader, release, err := decompress(resp.Body, resp.Header.Get("Content-Encoding"))
	if err != nil {
		return nil, err
	}
	defer release()

	limited := io.LimitReader(reader, maxBytes)

	utf8Reader, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		// Unknown charset: keep the raw bytes.
		utf8Reader = limited
	}

	return io.ReadAll(utf8Reader)
}

// decompress wraps body in a decoder for encoding. The returned release
// func closes the decoder, never the body itself.
func decompress(body io.Reader, encoding string) (io.Reader, func(), error) {
	noop := func() {}

	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return body, noop, nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(body)
		if errors.Is(err, io.EOF) {
			return body, noop, nil // empty body
		}
		if err != nil {
			return nil, noop, fmt.Errorf("gzip: %w", err)
		}
		return zr, func() { zr.Close() }, nil
	case "br":
		return brotli.NewReader(body), noop, nil
	case "deflate":
		// Servers disagree on zlib-wrapped vs raw deflate.
		buffered := bufio.NewReader(body)
		header, err := buffered.Peek(2)
		if err == nil && isZlibHeader(header) {
			zr, err := zlib.NewReader(buffered)
			if err != nil {
				return nil, noop, fmt.Errorf("deflate: %w", err)
			}
			return zr, func() { zr.Close() }, nil
		}
		fr := flate.NewReader(buffered)
		return fr, func() { fr.Close() }, nil
	default:
		// Unknown encodings pass through raw, like unknown charsets.
		return body, noop, nil
	}
}

func isZlibHeader(b []byte) bool {
	return len(b) == 2 && b[0]&0x0f == 8 && (uint16(b[0])<<8|uint16(b[1]))%31 == 0
}
