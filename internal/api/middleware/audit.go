package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const auditBodyLimit = 16384

type auditBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *auditBodyWriter) Write(b []byte) (int, error) {
	if w.body.Len() < auditBodyLimit {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *auditBodyWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// AuditMiddleware 记录每个请求的出入报文, 图片上传等multipart请求不读取请求体
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		reqBody := "[SKIPPED]"
		contentType := c.GetHeader("Content-Type")
		if c.Request.Body != nil && !strings.HasPrefix(contentType, "multipart/form-data") {
			raw, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
			reqBody = string(raw)
		}

		query := c.Request.URL.RawQuery
		if decoded, err := url.QueryUnescape(query); err == nil {
			query = decoded
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", query),
			log.String("req_body", reqBody),
		)

		w := &auditBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		start := time.Now()

		c.Next()

		log.InfoContext(ctx, "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(start)),
			log.String("res_body", w.body.String()),
		)
	}
}
