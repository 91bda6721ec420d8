package tracks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubRenderer struct {
	html  string
	err   error
	calls int
	url   string
}

func (r *stubRenderer) Render(ctx context.Context, url, waitSelector string) (string, error) {
	r.calls++
	r.url = url
	return r.html, r.err
}

func TestRatingOrder_RendersAndParses(t *testing.T) {
	renderer := &stubRenderer{html: `
		<table>
			<tr><td>1</td><td>Intro 1:02</td><td>80</td></tr>
			<tr><td>2</td><td>Void 3:45</td><td>95</td></tr>
		</table>`}
	o := NewOrderResolver(renderer, "https://example.com", false)

	names := o.RatingOrder(context.Background(), "/album/1/souvlaki")

	assert.Equal(t, []string{"Void", "Intro"}, names)
	assert.Equal(t, "https://example.com/album/1/souvlaki", renderer.url)
}

func TestRatingOrder_EmptyPathSkipsNetwork(t *testing.T) {
	renderer := &stubRenderer{}
	o := NewOrderResolver(renderer, "https://example.com", false)

	assert.Nil(t, o.RatingOrder(context.Background(), ""))
	assert.Equal(t, 0, renderer.calls)
}

func TestRatingOrder_MalformedPathSkipsNetwork(t *testing.T) {
	renderer := &stubRenderer{}
	o := NewOrderResolver(renderer, "https://example.com", false)

	assert.Nil(t, o.RatingOrder(context.Background(), "album/1/souvlaki"))
	assert.Equal(t, 0, renderer.calls)
}

func TestRatingOrder_RenderFailureIsEmpty(t *testing.T) {
	renderer := &stubRenderer{err: errors.New("render timeout")}
	o := NewOrderResolver(renderer, "https://example.com", false)

	assert.Empty(t, o.RatingOrder(context.Background(), "/album/1/souvlaki"))
}

func TestRatingOrder_PageWithoutRatingTableIsEmpty(t *testing.T) {
	renderer := &stubRenderer{html: "<div>no tables here</div>"}
	o := NewOrderResolver(renderer, "https://example.com", false)

	assert.Empty(t, o.RatingOrder(context.Background(), "/album/1/souvlaki"))
}
