package router

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/xcontext"
)

// The form parser keeps at most this much of a multipart body in memory;
// larger parts spill to temporary files.
const maxFormMemory = 8 << 20

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := xcontext.WithHTTPRequest(router.baseCtx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		if req.Method == http.MethodOptions {
			// Preflight requests carry no payload; closers still run so the
			// CORS closer can decorate the response.
			runClosers(ctx, router.closers)
			return
		}

		ctx, err := func() (context.Context, error) {
			if req.Method != method {
				return ctx, errorx.New(errorx.BadRequest, "Not supported method %s", req.Method)
			}

			for _, m := range router.befores {
				newCtx, err := m(ctx)
				if err != nil {
					return ctx, err
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			request := new(Request)
			if err := bindRequest(ctx, req, method, request); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return ctx, errorx.New(errorx.BadRequest, "Cannot bind the request")
			}

			resp, err := handler(ctx, request)
			if err != nil {
				return ctx, err
			}

			ctx = xcontext.WithResponse(ctx, resp)
			for _, m := range router.afters {
				newCtx, err := m(ctx)
				if err != nil {
					return ctx, err
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			return ctx, nil
		}()

		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeJSON(ctx, newErrorResponse(err))
		} else if resp := xcontext.Response(ctx); resp != nil {
			writeJSON(ctx, newResponse(resp))
		}

		runClosers(ctx, router.closers)
	}
}

func runClosers(ctx context.Context, closers []CloserFunc) {
	for _, closer := range closers {
		closer(ctx)
	}
}

func bindRequest(ctx context.Context, req *http.Request, method string, target any) error {
	switch method {
	case http.MethodGet:
		return bindValues(req.URL.Query(), target)

	case http.MethodPost:
		contentType := req.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(contentType, "multipart/form-data"):
			if err := req.ParseMultipartForm(maxFormMemory); err != nil {
				return err
			}
			// File parts stay on the request; domains read them through
			// xcontext.HTTPRequest.
			return bindValues(req.MultipartForm.Value, target)

		case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
			if err := req.ParseForm(); err != nil {
				return err
			}
			return bindValues(req.PostForm, target)

		default:
			if req.Body == nil || req.ContentLength == 0 {
				return nil
			}
			return json.NewDecoder(req.Body).Decode(target)
		}
	}

	return nil
}

func bindValues(values map[string][]string, target any) error {
	flat := make(map[string]string, len(values))
	for key, value := range values {
		if len(value) > 0 {
			flat[key] = value[0]
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(flat)
}
