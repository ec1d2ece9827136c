package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/alexisbeaulieu97/motionkit/internal/domain/animation"
	apperrors "github.com/alexisbeaulieu97/motionkit/pkg/errors"
)

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	settings, err := LoadSettings(filepath.Join(t.TempDir(), SettingsFileName), false)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
	assert.Equal(t, animation.DefaultDampingCurve(), settings.Animation.Curve())

	_, err = LoadSettings(filepath.Join(t.TempDir(), SettingsFileName), true)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSettingsOverlaysFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(`store:
  path: /tmp/aliases.json
log:
  format: zerolog
animation:
  max_damping_multiplier: 2.5
`), 0o600))

	settings, err := LoadSettings(path, true)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/aliases.json", settings.Store.Path)
	assert.Equal(t, "zerolog", settings.Log.Format)
	assert.Equal(t, "info", settings.Log.Level)
	assert.Equal(t, 2.5, settings.Animation.MaxDampingMultiplier)
	assert.Equal(t, 60, settings.Animation.FPS)
}

func TestValidateSettingsAggregatesFailures(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings()
	settings.Log.Format = "xml"
	settings.Animation.MaxDampingMultiplier = 0.5
	settings.Animation.FPS = 0

	err := ValidateSettings(settings)
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 3)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		var valErr *apperrors.ValidationError
		require.ErrorAs(t, e, &valErr)
		fields = append(fields, valErr.Field)
	}
	assert.ElementsMatch(t, []string{"log.format", "animation.max_damping_multiplier", "animation.fps"}, fields)
}
