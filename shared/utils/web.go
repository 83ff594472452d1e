package utils

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/meetiosdev/topics-api/shared/api"
	"github.com/meetiosdev/topics-api/shared/errors"
	"github.com/meetiosdev/topics-api/shared/logger"
	"github.com/meetiosdev/topics-api/shared/validation"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func WriteData(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, api.Response{Success: true, Data: data})
}

// WriteErrorAndStatusCode answers with the error envelope.
// Errors without an explicit status become a generic 500 so storage details never leak.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var e *errors.ErrorWithStatusCode
	switch {
	case stderrors.As(err, &e):
		WriteJSON(w, e.StatusCode, api.Response{Error: e.Message, Details: e.Details})
	case stderrors.Is(err, errors.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, api.Response{Error: "Not found"})
	default:
		WriteJSON(w, http.StatusInternalServerError, api.Response{Error: "Internal Server Error"})
	}
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	if err := validation.Struct(body); err != nil {
		logger.Log.Debug("request body failed validation", "error", err)
		return err
	}
	return nil
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("request body is not valid json", "error", err)
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return &errors.ErrorWithStatusCode{Message: "Request body too large", StatusCode: http.StatusRequestEntityTooLarge}
		}
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}
