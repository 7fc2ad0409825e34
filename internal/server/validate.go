package server

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

//go:embed openapi.yaml
var specYAML []byte

// MaxBodyBytes caps request bodies. An ingredient list is a few KB at most.
const MaxBodyBytes = 1 << 20

// Spec returns the raw OpenAPI document served under /api/openapi.yaml.
func Spec() []byte {
	return specYAML
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("server: loading openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("server: invalid openapi document: %w", err)
	}
	return doc, nil
}

// NewValidator returns middleware that checks each request against doc before
// it reaches a handler. Paths are matched with baseURL stripped, since the
// document's operations are relative to its /api server.
func NewValidator(doc *openapi3.T, baseURL string) (MiddlewareFunc, error) {
	// Route on bare paths; the server prefix is stripped per request.
	doc.Servers = nil
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("server: building request router: %w", err)
	}

	opts := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body []byte
			if r.Body != nil {
				b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					writeError(w, http.StatusRequestEntityTooLarge,
						fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
					return
				}
				if err != nil {
					writeError(w, http.StatusBadRequest, "reading request body: "+err.Error())
					return
				}
				body = b
			}

			req := r.Clone(r.Context())
			req.URL.Path = strings.TrimPrefix(r.URL.Path, baseURL)
			req.URL.RawPath = ""
			req.Body = io.NopCloser(bytes.NewReader(body))

			route, params, err := router.FindRoute(req)
			if err != nil {
				status := http.StatusNotFound
				if errors.Is(err, routers.ErrMethodNotAllowed) {
					status = http.StatusMethodNotAllowed
				}
				writeError(w, status, err.Error())
				return
			}

			in := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: params,
				Route:      route,
				Options:    opts,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), in); err != nil {
				writeError(w, http.StatusBadRequest, validationMessage(err))
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}, nil
}

// validationMessage trims kin-openapi's multi-line schema dumps to the first line.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i > 0 {
		msg = msg[:i]
	}
	return msg
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Error{Code: code, Message: msg})
}
