package catalog

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/zmb3/spotify/v2"
)

// ErrReauthRequired indicates the catalog rejected our credentials
// (401/403). It must surface to the request boundary so the caller can
// prompt re-authentication; it is never folded into "album unmatched".
var ErrReauthRequired = errors.New("catalog authentication expired")

// wrapErr maps Spotify API errors onto the package's error taxonomy.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se spotify.Error
	if errors.As(err, &se) && (se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden) {
		return fmt.Errorf("%s: %w: %v", op, ErrReauthRequired, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
