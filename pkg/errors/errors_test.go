package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("mapping values are not allowed")
	err := NewParseError("reference.yaml", 7, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "reference.yaml", parseErr.Path)
	require.Equal(t, 7, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "reference.yaml:7")
}

func TestParseErrorWithoutLine(t *testing.T) {
	t.Parallel()

	err := NewParseError("definitions.yaml", 0, stdErrors.New("empty document"))
	require.Equal(t, "parse error: definitions.yaml: empty document", err.Error())
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("spring.stiff.mass", "must be greater than 0", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "spring.stiff.mass", validationErr.Field)
	require.Contains(t, validationErr.Error(), "must be greater than 0")
}

func TestStoreErrorIncludesKey(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("permission denied")
	err := NewStoreError("accordion_token_aliases", "write", underlying)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	require.Equal(t, "accordion_token_aliases", storeErr.Key)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "store write [accordion_token_aliases]")
}
