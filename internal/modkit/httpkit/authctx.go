package httpkit

import (
	"net/http"
	"strings"

	perr "aidetector/internal/platform/errors"
	pnet "aidetector/internal/platform/net"
)

// Account returns the session account id or an unauthorized error
func Account(r *http.Request) (string, error) {
	id := pnet.AccountID(r.Context())
	if id == "" {
		return "", perr.Unauthorizedf("Unauthorized")
	}
	return id, nil
}

// BearerToken pulls the token out of "Authorization: Bearer <token>"; the scheme is case insensitive
func BearerToken(r *http.Request) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", perr.Unauthorizedf("Unauthorized")
	}
	return token, nil
}
