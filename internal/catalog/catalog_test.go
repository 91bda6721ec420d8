package catalog

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmb3/spotify/v2"
)

func TestChunkStrings(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}

	chunks := chunkStrings(ids, 2)
	require.Len(t, chunks, 3)
	assert.Equal(t, []string{"a", "b"}, chunks[0])
	assert.Equal(t, []string{"c", "d"}, chunks[1])
	assert.Equal(t, []string{"e"}, chunks[2])
}

func TestChunkStrings_ExactMultiple(t *testing.T) {
	chunks := chunkStrings([]string{"a", "b", "c", "d"}, 2)
	require.Len(t, chunks, 2)
}

func TestChunkStrings_Empty(t *testing.T) {
	assert.Empty(t, chunkStrings(nil, 100))
}

func TestChunkStrings_SmallerThanSize(t *testing.T) {
	chunks := chunkStrings([]string{"a"}, AddTracksChunkSize)
	require.Len(t, chunks, 1)
	assert.Equal(t, []string{"a"}, chunks[0])
}

func TestWrapErr_AuthStatusesMapToReauth(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		err := wrapErr("search album", spotify.Error{Status: status, Message: "bad token"})
		assert.ErrorIs(t, err, ErrReauthRequired, "status %d", status)
	}
}

func TestWrapErr_OtherStatusesPassThrough(t *testing.T) {
	err := wrapErr("search album", spotify.Error{Status: http.StatusTooManyRequests, Message: "slow down"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrReauthRequired)
	assert.Contains(t, err.Error(), "search album")
}

func TestWrapErr_NonAPIError(t *testing.T) {
	cause := errors.New("connection reset")
	err := wrapErr("get track details", cause)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrReauthRequired)
}

func TestWrapErr_Nil(t *testing.T) {
	assert.NoError(t, wrapErr("add tracks", nil))
}
