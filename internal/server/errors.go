// Package server provides the HTTP REST API for the chart pipeline.
package server

import (
	"errors"
	"net/http"

	"github.com/dkaplan/chartlist/internal/catalog"
	"github.com/dkaplan/chartlist/internal/chart"
	"github.com/dkaplan/chartlist/internal/playlist"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var notFound *chart.NotFoundError
	var invalid *chart.InvalidGenreError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrReauthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, playlist.ErrNoTracksResolved):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
