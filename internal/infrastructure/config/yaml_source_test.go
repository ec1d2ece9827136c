package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
	"github.com/alexisbeaulieu97/motionkit/internal/infrastructure/logging"
)

func assertDomainError(t *testing.T, err error, code tokens.ErrorCode) *tokens.DomainError {
	t.Helper()
	var domainErr *tokens.DomainError
	require.True(t, errors.As(err, &domainErr), "expected domain error, got %v", err)
	require.Equal(t, code, domainErr.Code)
	return domainErr
}

func TestYAMLSourceEmbeddedDefaults(t *testing.T) {
	t.Parallel()

	source := NewYAMLSource("", "", logging.NewNoOpLogger())
	ctx := context.Background()

	ref, err := source.Reference(ctx)
	require.NoError(t, err)
	assert.Contains(t, ref.Spring, "stiff")

	defs, err := source.Definitions(ctx)
	require.NoError(t, err)
	names := make([]tokens.Name, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	assert.Contains(t, names, tokens.AccordionTransitionDuration)
}

func TestYAMLSourceReadsOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	defsPath := filepath.Join(dir, "definitions.yaml")
	require.NoError(t, os.WriteFile(defsPath, []byte("tokens:\n  ACCORDION_ARROW_MASS: tokens.spring('soft').mass\n"), 0o644))

	defs, err := NewYAMLSource("", defsPath, logging.NewNoOpLogger()).Definitions(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, tokens.Name("ACCORDION_ARROW_MASS"), defs[0].Name)
}

func TestYAMLSourceMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewYAMLSource("does-not-exist.yaml", "", logging.NewNoOpLogger()).Reference(context.Background())
	domainErr := assertDomainError(t, err, tokens.ErrCodeNotFound)
	assert.Equal(t, "does-not-exist.yaml", domainErr.Context["path"])
}

func TestYAMLSourceInvalidSyntax(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "reference.yaml")
	require.NoError(t, os.WriteFile(path, []byte("duration: [\n"), 0o644))

	_, err := NewYAMLSource(path, "", logging.NewNoOpLogger()).Reference(context.Background())
	domainErr := assertDomainError(t, err, tokens.ErrCodeValidation)
	assert.Equal(t, path, domainErr.Context["path"])
}

func TestYAMLSourceAggregatesValidationFailures(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "definitions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tokens:\n  lower: 1\n  AlsoBad: 2\n"), 0o644))

	_, err := NewYAMLSource("", path, logging.NewNoOpLogger()).Definitions(context.Background())
	domainErr := assertDomainError(t, err, tokens.ErrCodeValidation)
	assert.Equal(t, 2, domainErr.Context["problems"])
	assert.Equal(t, "tokens.AlsoBad,tokens.lower", domainErr.Context["fields"])
}

func TestYAMLSourceCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewYAMLSource("", "", logging.NewNoOpLogger()).Definitions(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
