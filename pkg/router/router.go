package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/giveawayhub/backend/pkg/errorx"
	"github.com/giveawayhub/backend/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can derive a new request context
// or fail the request with an errorx error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux

	// rootCtx carries the configs, database and logger of the process. Every
	// request context derives from it.
	rootCtx context.Context

	befores []MiddlewareFunc
	afters  []CloserFunc
}

func New(ctx context.Context) *Router {
	return &Router{
		mux:     http.NewServeMux(),
		rootCtx: ctx,
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(closer CloserFunc) {
	r.afters = append(r.afters, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodPost, pattern, handler)
}

func register[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		ctx := xcontext.WithHTTPRequest(r.rootCtx, req)
		resp, err := func() (*Response, error) {
			var err error
			for _, before := range r.befores {
				if ctx, err = before(ctx); err != nil {
					return nil, err
				}
			}

			var request Request
			if err := bindRequest(req, &request); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind request: %v", err)
				return nil, errorx.New(errorx.BadRequest, "Cannot parse the request")
			}

			return handler(ctx, &request)
		}()

		if err != nil {
			writeJSON(ctx, w, newErrorResponse(err))
		} else {
			writeJSON(ctx, w, newResponse(resp))
		}

		for _, after := range r.afters {
			after(ctx)
		}
	})
}

func bindRequest(req *http.Request, target any) error {
	switch req.Method {
	case http.MethodGet, http.MethodDelete:
		return bindQuery(req, target)
	default:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return err
		}

		if len(body) == 0 {
			return nil
		}

		return json.Unmarshal(body, target)
	}
}

// bindQuery fills the request object from URL query values keyed by the json
// tags of its fields.
func bindQuery(req *http.Request, target any) error {
	v := reflect.ValueOf(target).Elem()
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Tag.Get("json")
		queryVal := req.URL.Query().Get(name)
		if queryVal == "" {
			continue
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(queryVal)

		case reflect.Int, reflect.Int64:
			val, err := strconv.ParseInt(queryVal, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(val)

		case reflect.Bool:
			val, err := strconv.ParseBool(queryVal)
			if err != nil {
				return err
			}
			field.SetBool(val)
		}
	}

	return nil
}
