package session

import (
	"context"
	"errors"

	"cempagamez/internal/storefront"
)

var ErrNotFound = errors.New("session not found")

// Store keeps one AppState per session id. Sessions are ephemeral: stores expire
// idle entries and nothing is meant to outlive a browser session.
type Store interface {
	Get(ctx context.Context, sid string) (storefront.AppState, error)
	Save(ctx context.Context, sid string, s storefront.AppState) error
	// Update applies fn to the stored state (a fresh state when there is none) and
	// saves the result atomically with respect to other updates of the same session.
	Update(ctx context.Context, sid string, fn func(storefront.AppState) storefront.AppState) (storefront.AppState, error)
}

// Load returns the stored state or a fresh one for unknown sessions.
func Load(ctx context.Context, st Store, sid string) (storefront.AppState, error) {
	s, err := st.Get(ctx, sid)
	if errors.Is(err, ErrNotFound) {
		return storefront.NewState(), nil
	}
	return s, err
}
