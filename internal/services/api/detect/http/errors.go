package http

import (
	"net/http"

	"aidetector/internal/core/detection"
	perr "aidetector/internal/platform/errors"
	"aidetector/internal/platform/logger"
	phttp "aidetector/internal/platform/net/http"
)

// ErrorBody is the flat error shape of /api/detect-ai; Details is only
// filled for backend and persistence failures
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MsgMethodNotAllowed answers anything but GET and POST
const MsgMethodNotAllowed = "Method not allowed"

const msgInternal = "Internal server error"

// Render maps err to a status and flat body
// Backend and storage failures all answer 500 with the cause in details
func Render(err error) (int, ErrorBody) {
	e, ok := perr.As(err)
	if !ok {
		return http.StatusInternalServerError, ErrorBody{Error: msgInternal}
	}
	msg := e.Message()
	switch e.Code() {
	case perr.ErrorCodeValidation, perr.ErrorCodeJSON, perr.ErrorCodeInvalidArgument:
		return http.StatusBadRequest, ErrorBody{Error: msg}
	case perr.ErrorCodeUnauthorized:
		return http.StatusUnauthorized, ErrorBody{Error: msg}
	case perr.ErrorCodeForbidden:
		return http.StatusForbidden, ErrorBody{Error: msg}
	case perr.ErrorCodeTooManyRequests:
		return http.StatusTooManyRequests, ErrorBody{Error: msg}
	case perr.ErrorCodeTimeout, perr.ErrorCodeUnavailable, perr.ErrorCodeUpstream, perr.ErrorCodeDB:
		return http.StatusInternalServerError, ErrorBody{Error: msg, Details: details(err)}
	case perr.ErrorCodePanic:
		return http.StatusInternalServerError, ErrorBody{Error: msgInternal}
	default:
		if msg == "" {
			msg = msgInternal
		}
		return http.StatusInternalServerError, ErrorBody{Error: msg}
	}
}

func details(err error) string {
	if ue, ok := detection.Upstream(err); ok {
		return ue.Error()
	}
	if root := perr.Root(err); root != nil {
		return root.Error()
	}
	return err.Error()
}

// WriteError is the middleware.ErrorWriter for the detect scope
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := Render(err)
	l := logger.C(r.Context())
	if status >= http.StatusInternalServerError {
		l.Error().Err(err).Int("status", status).Msg("detect failed")
	} else {
		l.Debug().Err(err).Int("status", status).Msg("detect refused")
	}
	phttp.JSON(w, status, body)
}
