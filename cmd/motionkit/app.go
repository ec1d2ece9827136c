package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/motionkit/internal/application/aliases"
	"github.com/alexisbeaulieu97/motionkit/internal/application/stylevars"
	apptokens "github.com/alexisbeaulieu97/motionkit/internal/application/tokens"
	"github.com/alexisbeaulieu97/motionkit/internal/config"
	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
	infraconfig "github.com/alexisbeaulieu97/motionkit/internal/infrastructure/config"
	"github.com/alexisbeaulieu97/motionkit/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/motionkit/internal/infrastructure/kvstore"
	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

// AppContext bundles long-lived services created at startup.
type AppContext struct {
	Settings   config.Settings
	Logger     ports.Logger
	Publisher  *events.LoggingPublisher
	Tokens     *apptokens.Service
	Resolution *apptokens.Initialization
	Store      ports.KeyValueStore
	Names      *aliases.Names
	Values     *aliases.Values
	Sheet      *stylevars.Sheet
}

type appOptions struct {
	// ephemeral keeps aliases in memory for the lifetime of the process.
	ephemeral bool
}

// newApp wires the token service, the alias registries and the style sheet.
func newApp(ctx context.Context, settings config.Settings, logger ports.Logger, opts appOptions) (*AppContext, error) {
	publisher := events.NewLoggingPublisher(logger.With("component", "events"))

	source := infraconfig.NewYAMLSource(settings.Tokens.Reference, settings.Tokens.Definitions, logger.With("component", "token_source"))
	svc, resolution, err := apptokens.NewInitializer(source, publisher, logger.With("component", "initializer")).NewService(ctx)
	if err != nil {
		return nil, newCommandError("resolve tokens", "loading token documents", err, tokenSuggestion(err))
	}

	var store ports.KeyValueStore
	if opts.ephemeral {
		store = kvstore.NewMemoryStore(nil)
	} else {
		fileStore, err := kvstore.NewFileStore(ctx, settings.Store.Path, logger)
		if err != nil {
			return nil, newCommandError("open alias store", settings.Store.Path, err, "Check the store file permissions or pass --store.")
		}
		store = fileStore
	}

	sheet, err := stylevars.NewSheet(publisher)
	if err != nil {
		return nil, newCommandError("create style sheet", "subscribing to token changes", err, "This is a bug; please report it.")
	}

	app := &AppContext{
		Settings:   settings,
		Logger:     logger,
		Publisher:  publisher,
		Tokens:     svc,
		Resolution: resolution,
		Store:      store,
		Names:      aliases.NewNames(ctx, store, publisher, logger.With("component", "aliases")),
		Values:     aliases.NewValues(ctx, store, publisher, logger.With("component", "aliases")),
		Sheet:      sheet,
	}

	// Publish the initial style variables so the sheet starts populated.
	if err := svc.SetAll(ctx, svc.Overrides()); err != nil {
		app.Close()
		return nil, newCommandError("publish style variables", "initial token state", err, "This is a bug; please report it.")
	}
	return app, nil
}

// CommandContext returns the scoped context for a command invocation: the
// token scope plus a fresh correlation ID, and a logger tagged with it.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, ports.Logger) {
	id := ports.GenerateCorrelationID()
	ctx := ports.WithCorrelationID(commandContext(cmd), id)
	ctx = apptokens.WithService(ctx, a.Tokens)
	return ctx, a.Logger.With("component", component, "correlation_id", id)
}

// Close releases the subscriptions held by the app.
func (a *AppContext) Close() {
	if a.Sheet != nil {
		a.Sheet.Close()
	}
}

// loadApp resolves settings and builds the app with the primary logger.
func loadApp(cmd *cobra.Command, flags *rootFlags, opts appOptions) (*AppContext, error) {
	settings, err := flags.settings(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := flags.logger(cmd, settings)
	if err != nil {
		return nil, err
	}
	return newApp(commandContext(cmd), settings, logger, opts)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func tokenSuggestion(err error) string {
	var domainErr *tokens.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case tokens.ErrCodeNotFound:
			return "Check the --reference and --definitions paths."
		case tokens.ErrCodeValidation:
			return "Fix the reported fields in the token documents."
		}
	}
	return "Run with --log-level debug for details."
}
