package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"

	"github.com/flymeaway/flight-price-scanner/internal/pkg/exception"
)

// DecodeRequestFunc extracts a typed request from the HTTP request.
type DecodeRequestFunc func(r *http.Request) (interface{}, error)

// EncodeResponseFunc writes the endpoint response to the client.
type EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

// MakeHandlerFunc glues a go-kit endpoint to chi: decode, call, encode,
// with every error funnelled through ErrorResponse.
func MakeHandlerFunc(
	ep endpoint.Endpoint,
	decode DecodeRequestFunc,
	encode EncodeResponseFunc,
) http.HandlerFunc {
	return func(respWriter http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		request, err := decode(req)
		if err != nil {
			ErrorResponse(ctx, badRequest(err), respWriter)

			return
		}

		response, err := ep(ctx, request)
		if err != nil {
			ErrorResponse(ctx, err, respWriter)

			return
		}

		if err := encode(ctx, respWriter, response); err != nil {
			ErrorResponse(ctx, err, respWriter)
		}
	}
}

// DecodeRequest decodes a JSON body into *T and runs its Bind validation.
func DecodeRequest[T any](req *http.Request) (interface{}, error) {
	request := new(T)

	binder, ok := any(request).(render.Binder)
	if !ok {
		return nil, fmt.Errorf("request type %T does not implement render.Binder", request)
	}

	if err := render.Bind(req, binder); err != nil {
		return nil, err
	}

	return request, nil
}

// badRequest maps decode failures without an explicit status to 400;
// validation errors already carry their own.
func badRequest(err error) error {
	var appErr exception.ApplicationError
	if errors.As(err, &appErr) {
		return err
	}

	return exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
		Cause:      err,
	}
}
