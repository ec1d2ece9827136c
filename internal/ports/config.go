package ports

import (
	"context"

	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
)

// TokenSource loads the static token documents: the reference tables the
// resolver dereferences against and the component definitions listing every
// managed token. Implementations must be deterministic and free of side
// effects.
//
// Error mapping expectations:
//   - io/fs.ErrNotExist → ErrCodeNotFound
//   - YAML parsing failures → pkg/errors.ParseError
//   - schema failures → pkg/errors.ValidationError (aggregated)
type TokenSource interface {
	Reference(ctx context.Context) (tokens.Reference, error)
	Definitions(ctx context.Context) (tokens.Definitions, error)
}
