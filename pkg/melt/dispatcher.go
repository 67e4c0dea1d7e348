package melt

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContentTypeText is the content type of every dispatched result
const ContentTypeText = "text/plain; charset=UTF-8"

// Result is the textual outcome of a dispatched request
type Result struct {
	Status      int
	Body        string
	ContentType string
}

// Dispatcher turns requests into lookups, bindings and handler calls. It
// never returns an error: every failure becomes a Result.
type Dispatcher struct {
	router *Router
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher over router
func NewDispatcher(router *Router, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{router: router, logger: logger}
}

// Dispatch routes req and renders the handler outcome
func (d *Dispatcher) Dispatch(req *Request) Result {
	method := NormalizeMethod(req.Method)
	log := d.requestLogger(method, req.Path)
	log.Debug("melt: dispatching request")

	binding, ok := d.router.Lookup(method, req.Path)
	if !ok {
		log.Debug("melt: no handler")
		return textResult(http.StatusNotFound, "404 Not Found: "+req.Path)
	}

	args, err := d.router.Bind(binding, req)
	if err != nil {
		log.Warn("melt: binding failed", zap.String("route", binding.Route.Key), zap.Error(err))
		return internalError(err)
	}

	value, err := d.invoke(binding, req, args)
	if err != nil {
		var httpErr *HttpError
		if errors.As(err, &httpErr) {
			log.Debug("melt: handler returned http error", zap.Int("status", httpErr.StatusCode))
			return textResult(httpErr.StatusCode, httpErr.Message)
		}
		log.Error("melt: handler failed", zap.String("route", binding.Route.Key), zap.Error(err))
		return internalError(err)
	}

	result := render(value)
	log.Debug("melt: request handled", zap.Int("status", result.Status))
	return result
}

// requestLogger tags the request with method and path, plus a request id when
// debug logging is on
func (d *Dispatcher) requestLogger(method, path string) *zap.Logger {
	if !d.logger.Core().Enabled(zap.DebugLevel) {
		return d.logger.With(zap.String("method", method), zap.String("path", path))
	}
	return d.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("method", method),
		zap.String("path", path))
}

func (d *Dispatcher) invoke(binding *HandlerBinding, req *Request, args Args) (value any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			value = nil
			err = fmt.Errorf("handler %s panicked: %v", binding.Handler, rec)
		}
	}()
	return binding.Invoke(req.Ctx(), args)
}

// ServeHTTP lets a Dispatcher be mounted on any net/http server
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteResult(w, internalError(err))
		return
	}
	WriteResult(w, d.Dispatch(&Request{
		Context: r.Context(),
		Method:  r.Method,
		Path:    r.URL.Path,
		Query:   r.URL.Query(),
		Body:    string(body),
	}))
}

// WriteResult writes res to w
func WriteResult(w http.ResponseWriter, res Result) {
	w.Header().Set("Content-Type", res.ContentType)
	w.WriteHeader(res.Status)
	_, _ = io.WriteString(w, res.Body)
}

func render(value any) Result {
	switch v := value.(type) {
	case nil:
		return textResult(http.StatusOK, "")
	case *Response:
		if v == nil {
			return textResult(http.StatusOK, "")
		}
		status := v.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		return textResult(status, renderBody(v.Body))
	case *HttpError:
		if v == nil {
			return textResult(http.StatusOK, "")
		}
		return textResult(v.StatusCode, v.Message)
	default:
		return textResult(http.StatusOK, renderBody(v))
	}
}

func renderBody(v any) string {
	switch b := v.(type) {
	case nil:
		return ""
	case string:
		return b
	case []byte:
		return string(b)
	default:
		return fmt.Sprint(b)
	}
}

func textResult(status int, body string) Result {
	return Result{Status: status, Body: body, ContentType: ContentTypeText}
}

func internalError(err error) Result {
	return textResult(http.StatusInternalServerError, "Internal Server Error: "+err.Error())
}
