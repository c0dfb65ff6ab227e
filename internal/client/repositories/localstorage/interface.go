package localstorage

import "context"

// Repository is a string key/value store that survives restarts, the
// client's counterpart of browser local storage. Get on a missing key
// returns ("", false, nil).
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
