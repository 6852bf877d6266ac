package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/xcontext"
)

type errorResponse struct {
	Errors any `json:"errors"`
}

// StatusCode maps an error to the HTTP status returned to the client.
func StatusCode(err error) int {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		return http.StatusInternalServerError
	}

	switch errx.Code {
	case errorx.BadRequest, errorx.Validation, errorx.AlreadyExists:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody returns the envelope sent to the client for err. Errors which are
// not errorx.Error never leak their detail.
func ErrorBody(err error) any {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	return errorResponse{Errors: errx.Detail()}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		xcontext.Logger(ctx).Errorf("Unexpected error: %v", err)
	}

	if err := WriteJSON(w, StatusCode(err), ErrorBody(err)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}

func writeResponse[Response any](ctx context.Context, w http.ResponseWriter, resp *Response) {
	var body any = resp
	if resp == nil {
		body = struct{}{}
	}

	if err := WriteJSON(w, http.StatusOK, body); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}

func WriteJSON(w http.ResponseWriter, status int, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}
