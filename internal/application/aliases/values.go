package aliases

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

// TypeSpring is the only value type that carries aliases.
const TypeSpring = "spring"

// DefaultValues are the built-in labels for the spring presets.
func DefaultValues() map[string]string {
	return map[string]string{
		"very_fast": "Очень быстрая",
		"stiff":     "Быстрая (резкая)",
		"moderate":  "Средняя (умеренная)",
		"soft":      "Медленная (плавная)",
		"very_slow": "Очень медленная",
	}
}

// Values labels technical token values such as preset ids.
type Values struct {
	t *table
}

// NewValues loads the value table from store.
func NewValues(ctx context.Context, store ports.KeyValueStore, publisher ports.EventPublisher, logger ports.Logger) *Values {
	return &Values{t: newTable(ctx, ValuesKey, DefaultValues(), store, publisher, logger)}
}

// Get returns "<label> (<value>)". It reports false when value has no alias,
// leaving the formatting fallback to the caller.
func (v *Values) Get(value, valueType string) (string, bool) {
	if valueType != TypeSpring {
		return "", false
	}
	label, ok := v.t.get(value)
	if !ok || label == "" {
		return "", false
	}
	return fmt.Sprintf("%s (%s)", label, value), true
}

// Only returns the bare label, or value itself when none is registered.
func (v *Values) Only(value, valueType string) string {
	if valueType == TypeSpring {
		if label, ok := v.t.get(value); ok && label != "" {
			return label
		}
	}
	return value
}

// Set registers a label. Types other than TypeSpring are ignored.
func (v *Values) Set(ctx context.Context, value, label, valueType string) error {
	if valueType != TypeSpring {
		return nil
	}
	return v.t.set(ctx, value, label)
}

// All returns every label registered for valueType.
func (v *Values) All(valueType string) map[string]string {
	if valueType != TypeSpring {
		return map[string]string{}
	}
	return v.t.all()
}

// Reset restores the defaults once confirm approves.
func (v *Values) Reset(ctx context.Context, confirmation Confirmation) error {
	if err := confirm(ctx, confirmation, "Reset value aliases to defaults?"); err != nil {
		return err
	}
	return v.t.reset(ctx)
}
