package tokens

import (
	"context"

	domaintokens "github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
)

type serviceKey struct{}

// WithService opens a token scope on ctx.
func WithService(ctx context.Context, svc *Service) context.Context {
	return context.WithValue(ctx, serviceKey{}, svc)
}

// FromContext returns the service of the active scope. Widgets call it at
// construction and must abort when it fails.
func FromContext(ctx context.Context) (*Service, error) {
	if ctx != nil {
		if svc, ok := ctx.Value(serviceKey{}).(*Service); ok && svc != nil {
			return svc, nil
		}
	}
	return nil, domaintokens.ErrContextUnavailable
}
