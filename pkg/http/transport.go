package http

import (
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// payloadContextKey carries the serialized request payload so the logging
// transport can include it without re-reading the body.
type payloadContextKey struct{}

type authTransport struct {
	token     string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	if t.token != "" {
		reqCopy.Header.Set("Authorization", "Bearer "+t.token)
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken attaches a bearer token to every outbound request.
func WithAuthToken(token string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{
			token:     token,
			transport: rt,
		}
	})
}

type logTransport struct {
	transport http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	}

	if payload, ok := ctx.Value(payloadContextKey{}).([]byte); ok && len(payload) > 0 {
		fields = append(fields, zap.ByteString("payload", payload))
	}

	ctxzap.Debug(ctx, "HTTP outbound request", fields...)

	return t.transport.RoundTrip(req)
}

// WithRequestLogging wraps the transport with debug logging of method, URL
// and payload.
func WithRequestLogging() HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &logTransport{
			transport: rt,
		}
	})
}
