package chart

import "fmt"

// NotFoundError indicates both acquisition tiers produced no albums for a
// genre. This is the expected outcome for genres the source site does not
// chart, not a transport failure.
type NotFoundError struct {
	Genre string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no chart found for genre %q, try another genre", e.Genre)
}

// InvalidGenreError indicates the genre input normalized to an empty slug.
type InvalidGenreError struct {
	Genre string
}

func (e *InvalidGenreError) Error() string {
	return fmt.Sprintf("invalid genre %q", e.Genre)
}
