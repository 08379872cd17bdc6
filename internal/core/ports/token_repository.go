package ports

import (
	"context"
	"time"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
)

// TokenRepository defines persistence for link tokens. One record per
// case; Save replaces any existing record for the same case, which is how
// re-issuing discards the previous token value.
type TokenRepository interface {
	Save(ctx context.Context, t *domain.LinkToken) error
	FindByToken(ctx context.Context, token string) (*domain.LinkToken, error)
	FindByCase(ctx context.Context, caseID string) (*domain.LinkToken, error)
	// Link records the channel identity and linkage time on the token.
	Link(ctx context.Context, caseID, chatID string, at time.Time) error
}
