package aliases

import (
	"context"

	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

// DefaultNames are the built-in labels for technical token names.
func DefaultNames() map[string]string {
	return map[string]string{
		"ACCORDION_CONTENT_TRANSITION_DURATION": "Opening speed",
		"ACCORDION_ANIMATION_DURATION":          "Animation duration",
		"ACCORDION_TRANSITION_DURATION":         "Transition duration",
		"ACCORDION_CONTENT_TRANSITION_EASING":   "Opening easing",
		"ACCORDION_TRANSITION_EASING":           "Transition easing",
		"ACCORDION_CONTENT_OPACITY_EASING":      "Fade easing",
		"ACCORDION_ARROW_STIFFNESS":             "Arrow bounce stiffness",
		"ACCORDION_ARROW_DAMPING":               "Arrow bounce damping",
		"ACCORDION_ARROW_MASS":                  "Arrow weight",
		"ACCORDION_CONTENT_STIFFNESS":           "Content bounce stiffness",
		"ACCORDION_CONTENT_DAMPING":             "Content bounce damping",
		"ACCORDION_CONTENT_MASS":                "Content weight",
	}
}

// Names labels technical token names.
type Names struct {
	t *table
}

// NewNames loads the name table from store.
func NewNames(ctx context.Context, store ports.KeyValueStore, publisher ports.EventPublisher, logger ports.Logger) *Names {
	return &Names{t: newTable(ctx, NamesKey, DefaultNames(), store, publisher, logger)}
}

// Get returns the label of name, or the name itself when none is registered.
func (n *Names) Get(name tokens.Name) string {
	if label, ok := n.t.get(string(name)); ok && label != "" {
		return label
	}
	return string(name)
}

// Set registers a label and persists the table.
func (n *Names) Set(ctx context.Context, name tokens.Name, label string) error {
	return n.t.set(ctx, string(name), label)
}

// All returns a copy of every registered label.
func (n *Names) All() map[string]string {
	return n.t.all()
}

// Reset restores the defaults once confirm approves.
func (n *Names) Reset(ctx context.Context, confirmation Confirmation) error {
	if err := confirm(ctx, confirmation, "Reset token name aliases to defaults?"); err != nil {
		return err
	}
	return n.t.reset(ctx)
}
