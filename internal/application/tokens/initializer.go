package tokens

import (
	"context"
	"fmt"

	domaintokens "github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

// Initialization is the outcome of one resolution pass.
type Initialization struct {
	Reference   domaintokens.Reference
	Definitions domaintokens.Definitions
	Resolved    domaintokens.Set
	Warnings    []domaintokens.Warning
}

// Initializer loads the token documents and resolves them once at startup.
type Initializer struct {
	source    ports.TokenSource
	publisher ports.EventPublisher
	logger    ports.Logger
}

// NewInitializer constructs an initializer over the given document source.
func NewInitializer(source ports.TokenSource, publisher ports.EventPublisher, logger ports.Logger) *Initializer {
	return &Initializer{source: source, publisher: publisher, logger: logger}
}

// Resolve reads both documents and resolves the definitions. Unresolved
// references are logged as resolution warnings and kept verbatim.
func (i *Initializer) Resolve(ctx context.Context) (*Initialization, error) {
	ref, err := i.source.Reference(ctx)
	if err != nil {
		if i.logger != nil {
			i.logger.Error(ctx, "failed to load reference tables", "error", err)
		}
		return nil, fmt.Errorf("load reference tables: %w", err)
	}
	defs, err := i.source.Definitions(ctx)
	if err != nil {
		if i.logger != nil {
			i.logger.Error(ctx, "failed to load token definitions", "error", err)
		}
		return nil, fmt.Errorf("load token definitions: %w", err)
	}

	resolved, warnings := domaintokens.Resolve(defs, ref)
	if i.logger != nil {
		for _, w := range warnings {
			i.logger.Warn(ctx, "token reference unresolved",
				"event", "resolution_warning",
				"token", string(w.Name),
				"raw", w.Raw,
				"reason", w.Reason,
			)
		}
		i.logger.Debug(ctx, "tokens resolved",
			"event", "resolution_complete",
			"tokens", len(resolved),
			"warnings", len(warnings),
		)
	}

	publish(ctx, i.publisher, i.logger, ports.EventTokensResolved, map[string]interface{}{
		"tokens":   len(resolved),
		"warnings": len(warnings),
	})

	return &Initialization{
		Reference:   ref,
		Definitions: defs,
		Resolved:    resolved,
		Warnings:    warnings,
	}, nil
}

// NewService resolves the documents and builds the service on top of the
// static widget defaults.
func (i *Initializer) NewService(ctx context.Context) (*Service, *Initialization, error) {
	result, err := i.Resolve(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc := New(result.Resolved, domaintokens.StaticDefaults(), result.Reference, i.publisher, i.logger)
	return svc, result, nil
}
