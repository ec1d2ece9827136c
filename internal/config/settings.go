package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/motionkit/internal/domain/animation"
	apperrors "github.com/alexisbeaulieu97/motionkit/pkg/errors"
)

// SettingsFileName is looked up in the working directory when no explicit
// settings path is given.
const SettingsFileName = "motionkit.yaml"

// Settings holds application preferences read from motionkit.yaml.
type Settings struct {
	Store     StoreSettings     `yaml:"store"`
	Log       LogSettings       `yaml:"log"`
	Tokens    TokenSettings     `yaml:"tokens"`
	Animation AnimationSettings `yaml:"animation"`
}

// StoreSettings locates the alias store.
type StoreSettings struct {
	Path string `yaml:"path" validate:"required"`
}

// LogSettings selects the logging backend.
type LogSettings struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json zerolog"`
}

// TokenSettings overrides the embedded token documents.
type TokenSettings struct {
	Reference   string `yaml:"reference"`
	Definitions string `yaml:"definitions"`
}

// AnimationSettings tunes the animation calculators.
type AnimationSettings struct {
	MaxDampingMultiplier float64 `yaml:"max_damping_multiplier" validate:"gte=1"`
	MinHeight            float64 `yaml:"min_height" validate:"gte=0"`
	MaxHeight            float64 `yaml:"max_height" validate:"gtfield=MinHeight"`
	FPS                  int     `yaml:"fps" validate:"min=1,max=240"`
}

// Curve returns the damping curve described by the settings.
func (a AnimationSettings) Curve() animation.DampingCurve {
	return animation.DampingCurve{
		MinHeight:     a.MinHeight,
		MaxHeight:     a.MaxHeight,
		MaxMultiplier: a.MaxDampingMultiplier,
	}
}

// DefaultStorePath returns ~/.motionkit/store.json, or a relative path when
// the home directory is unknown.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".motionkit", "store.json")
	}
	return filepath.Join(home, ".motionkit", "store.json")
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Store: StoreSettings{Path: DefaultStorePath()},
		Log:   LogSettings{Level: "info", Format: "text"},
		Animation: AnimationSettings{
			MaxDampingMultiplier: animation.DefaultMaxDampingMultiplier,
			MinHeight:            animation.DefaultMinHeight,
			MaxHeight:            animation.DefaultMaxHeight,
			FPS:                  60,
		},
	}
}

// LoadSettings reads settings from path on top of the defaults. A missing
// file is not an error unless required is set.
func LoadSettings(path string, required bool) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return settings, nil
		}
		return settings, apperrors.NewParseError(path, 0, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), apperrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateSettings(settings); err != nil {
		return DefaultSettings(), err
	}
	return settings, nil
}

// ValidateSettings checks every field and reports all failures at once.
func ValidateSettings(settings Settings) error {
	return convertValidationError(validatorInstance().Struct(settings))
}
