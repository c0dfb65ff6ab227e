package cookies

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophaccount/internal/client/models"
)

// Repository is the client's cookie jar. Get evicts a cookie that has
// expired at now and reports it as absent (nil, nil).
type Repository interface {
	Get(ctx context.Context, name string, now time.Time) (*models.Cookie, error)
	Set(ctx context.Context, c models.Cookie) error
	Remove(ctx context.Context, name string) error
}
