package utils

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/atelier-dev/atelier/internal/api"
	"github.com/atelier-dev/atelier/internal/domain"
	internal_errors "github.com/atelier-dev/atelier/internal/errors"
	"github.com/atelier-dev/atelier/internal/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeValidate decodes a JSON body into an explicit DTO and runs its
// validation tags. Any failure comes back as a typed 400.
func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("failed to decode request body", "error", err)
		return internal_errors.Validation("Body is invalid json")
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request body validation failed", "error", err)
		return internal_errors.Validation("Required fields missing or malformed")
	}
	return nil
}

func writeEnvelope(w http.ResponseWriter, statusCode int, resp api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// WriteData answers with {success: true, data: ...}.
func WriteData(w http.ResponseWriter, statusCode int, data interface{}) {
	writeEnvelope(w, statusCode, api.Response{Success: true, Data: data})
}

// WriteMessage answers with {success: true, message: ...}.
func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	writeEnvelope(w, statusCode, api.Response{Success: true, Message: message})
}

// WritePage answers a listing with data plus pagination metadata.
func WritePage(w http.ResponseWriter, data interface{}, p domain.Pagination) {
	writeEnvelope(w, http.StatusOK, api.Response{Success: true, Data: data, Pagination: &p})
}

// WriteError maps a typed error onto the envelope. Untyped errors are
// logged and surfaced as a generic 500 so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok {
		writeEnvelope(w, e.StatusCode, api.Response{Success: false, Error: e.Message})
		return
	}
	logger.Log.Error("unexpected error", "error", err)
	writeEnvelope(w, http.StatusInternalServerError, api.Response{Success: false, Error: "Internal server error"})
}

// ParseIntParam parses an integer query/path parameter with a typed 400 on
// malformed input.
func ParseIntParam(param, paramName string) (int, error) {
	val, err := strconv.Atoi(param)
	if err != nil {
		return 0, internal_errors.Validation("invalid " + paramName + ": must be an integer")
	}
	return val, nil
}

// ParseBoolParam parses an optional bool query parameter; empty means unset.
func ParseBoolParam(param, paramName string) (*bool, error) {
	if param == "" {
		return nil, nil
	}
	val, err := strconv.ParseBool(param)
	if err != nil {
		return nil, internal_errors.Validation("invalid " + paramName + ": must be a boolean")
	}
	return &val, nil
}

func GetIP(r *http.Request) (string, error) {
	ip := r.Header.Get("X-REAL-IP")
	if net.ParseIP(ip) != nil {
		return ip, nil
	}

	for _, ip := range strings.Split(r.Header.Get("X-FORWARDED-FOR"), ",") {
		ip = strings.TrimSpace(ip)
		if net.ParseIP(ip) != nil {
			return ip, nil
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if net.ParseIP(ip) != nil {
		return ip, nil
	}
	return "", internal_errors.Validation("No valid ip found")
}
