package schemas

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload(t *testing.T) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"genreKey": "shoegaze",
		"albums": []map[string]any{
			{"rank": 1, "artist": "Slowdive", "album": "Souvlaki", "albumUrl": "/album/1/souvlaki"},
			{"rank": 2, "artist": "Ride", "album": "Nowhere"},
		},
		"fetchedAt": time.Now().UTC().Format(time.RFC3339),
	})
	require.NoError(t, err)
	return payload
}

func TestValidateChartResult_Valid(t *testing.T) {
	assert.NoError(t, ValidateChartResult(validPayload(t)))
}

func TestValidateChartResult_MissingRequiredField(t *testing.T) {
	payload := []byte(`{"genreKey": "shoegaze", "albums": []}`)

	err := ValidateChartResult(payload)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)
}

func TestValidateChartResult_BadGenreKey(t *testing.T) {
	payload := []byte(`{"genreKey": "Not A Slug!", "albums": [], "fetchedAt": "2026-01-01T00:00:00Z"}`)

	var verr *ValidationError
	require.ErrorAs(t, ValidateChartResult(payload), &verr)
}

func TestValidateChartResult_BadAlbumRank(t *testing.T) {
	payload := []byte(`{
		"genreKey": "shoegaze",
		"albums": [{"rank": 0, "artist": "Slowdive", "album": "Souvlaki"}],
		"fetchedAt": "2026-01-01T00:00:00Z"
	}`)

	var verr *ValidationError
	require.ErrorAs(t, ValidateChartResult(payload), &verr)
}

func TestValidateChartResult_MalformedJSON(t *testing.T) {
	err := ValidateChartResult([]byte("{truncated"))
	require.Error(t, err)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr), "malformed JSON is a run failure, not a field failure")
}
