package edge

import (
	"context"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/richxcame/ride-hailing-web/pkg/logger"
	"github.com/richxcame/ride-hailing-web/pkg/middleware"
)

const (
	// HelloPath is answered by the edge itself; every other path goes to the origin
	HelloPath        = "/api/hello"
	HelloBody        = "Hello from API!"
	HelloContentType = "text/plain"
)

// forwardedHeaders are dropped by httputil.ReverseProxy before Rewrite runs
var forwardedHeaders = []string{"Forwarded", "X-Forwarded-For", "X-Forwarded-Host", "X-Forwarded-Proto"}

// Handler answers HelloPath and forwards everything else to the origin
type Handler struct {
	origin *url.URL
	proxy  *httputil.ReverseProxy
}

// NewHandler creates a handler forwarding to origin through transport.
// A nil transport means http.DefaultTransport.
func NewHandler(origin *url.URL, transport http.RoundTripper) *Handler {
	h := &Handler{origin: origin}
	h.proxy = &httputil.ReverseProxy{
		Rewrite:      h.rewrite,
		Transport:    transport,
		ErrorHandler: h.proxyError,
	}
	return h
}

// rewrite points the request at the origin and otherwise leaves it as the
// client sent it: method, path, query, body, headers and Host.
func (h *Handler) rewrite(pr *httputil.ProxyRequest) {
	pr.SetURL(h.origin)
	pr.Out.Host = pr.In.Host

	for _, name := range forwardedHeaders {
		if values, ok := pr.In.Header[name]; ok {
			pr.Out.Header[name] = values
		}
	}
}

func (h *Handler) proxyError(w http.ResponseWriter, r *http.Request, err error) {
	logger.WithContext(r.Context()).Warn("origin request failed",
		zap.String("origin", h.origin.Host),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	w.WriteHeader(http.StatusBadGateway)
}

// Hello writes the fixed plain-text greeting
func (h *Handler) Hello(c *gin.Context) {
	c.Data(http.StatusOK, HelloContentType, []byte(HelloBody))
}

// Forward proxies the request to the origin and relays its response,
// interim 1xx responses included when the connection writer is known.
func (h *Handler) Forward(c *gin.Context) {
	var w http.ResponseWriter = c.Writer
	if raw, ok := c.Request.Context().Value(connWriterKey{}).(http.ResponseWriter); ok {
		w = interimWriter{ResponseWriter: c.Writer, conn: raw}
	}
	h.proxy.ServeHTTP(w, c.Request)
}

type connWriterKey struct{}

// interimWriter sends 1xx responses on the connection writer. gin's writer
// only records the status until the body is written, so a 103 from the origin
// would otherwise be replaced by the final status and never sent.
type interimWriter struct {
	gin.ResponseWriter
	conn http.ResponseWriter
}

func (w interimWriter) WriteHeader(code int) {
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		w.conn.WriteHeader(code)
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

// Register routes every method on exactly HelloPath to Hello and all other
// requests to Forward.
func (h *Handler) Register(engine *gin.Engine) {
	// /api/hello/ and /API/hello must reach the origin, not redirect
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false
	// match on the raw path so /api%2Fhello is forwarded untouched
	engine.UseRawPath = true
	engine.UnescapePathValues = false
	engine.HandleMethodNotAllowed = false

	engine.Any(HelloPath, h.Hello)
	engine.NoRoute(h.Forward)
	engine.NoMethod(h.Forward)
}

// NewRouter builds the edge engine. Only middleware that leaves response
// headers alone is installed so forwarded responses stay verbatim.
func NewRouter(h *Handler, serviceName string, extra ...gin.HandlerFunc) http.Handler {
	engine := gin.New()
	engine.Use(middleware.BareRecovery())
	engine.Use(extra...)
	engine.Use(middleware.RequestLogger())
	engine.Use(middleware.Metrics(serviceName))

	h.Register(engine)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		engine.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), connWriterKey{}, w)))
	})
}
