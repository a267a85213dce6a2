package net

import (
	"net/http"

	perr "aidetector/internal/platform/errors"
)

// HTTPStatus maps an error to a status, nil is 200
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return perr.HTTPStatus(err)
}
