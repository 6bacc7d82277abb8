package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

const brotliMinLength = 1024

type brotliWriter struct {
	gin.ResponseWriter
	bw  *brotli.Writer
	buf []byte
}

func (w *brotliWriter) Write(data []byte) (int, error) {
	// Buffer small responses; compressing them costs more than it saves.
	if w.buf != nil {
		w.buf = append(w.buf, data...)
		if len(w.buf) < brotliMinLength {
			return len(data), nil
		}
		w.Header().Set("Content-Encoding", "br")
		w.Header().Del("Content-Length")
		buffered := w.buf
		w.buf = nil
		if _, err := w.bw.Write(buffered); err != nil {
			return 0, err
		}
		return len(data), nil
	}
	n, err := w.bw.Write(data)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// close flushes either the compressed stream or the still-buffered plain bytes.
func (w *brotliWriter) close() {
	if w.buf != nil {
		_, _ = w.ResponseWriter.Write(w.buf)
		w.buf = nil
		return
	}
	_ = w.bw.Close()
}

// Brotli compresses responses above a size threshold for clients that
// accept the br encoding.
func Brotli() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		w := &brotliWriter{
			ResponseWriter: c.Writer,
			bw:             brotli.NewWriter(c.Writer),
			buf:            make([]byte, 0, brotliMinLength),
		}
		c.Writer = w
		defer w.close()

		c.Next()
	}
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		if strings.TrimSpace(strings.ToLower(enc)) == "br" {
			return true
		}
	}
	return false
}
