package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/motionkit/internal/application/aliases"
	apptokens "github.com/alexisbeaulieu97/motionkit/internal/application/tokens"
	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
)

// choice is one selectable value of a configurator row.
type choice struct {
	key   string
	value string
	label string
}

// configurator edits the token store one row at a time. Preset rows apply a
// whole spring preset; scale rows pick from the reference scale.
type configurator struct {
	svc    *apptokens.Service
	names  *aliases.Names
	values *aliases.Values

	rows   []tokens.Name
	cursor int
}

func newConfigurator(svc *apptokens.Service, names *aliases.Names, values *aliases.Values) configurator {
	return configurator{
		svc:    svc,
		names:  names,
		values: values,
		rows:   svc.Snapshot().Names(),
	}
}

func (c *configurator) current() tokens.Name {
	if len(c.rows) == 0 {
		return ""
	}
	return c.rows[c.cursor]
}

func (c *configurator) move(delta int) {
	if len(c.rows) == 0 {
		return
	}
	c.cursor = (c.cursor + delta + len(c.rows)) % len(c.rows)
}

// editable reports whether the row accepts direct edits. Spring constants
// owned by an applied preset are locked until the preset becomes custom;
// preset selectors always are.
func (c *configurator) editable(name tokens.Name) bool {
	if _, ok := presetTarget(name); ok {
		return true
	}
	return !c.svc.IsDerived(name)
}

func (c *configurator) label(name tokens.Name) string {
	if c.names == nil {
		return string(name)
	}
	return c.names.Get(name)
}

// display renders the current value, using the value alias for presets.
func (c *configurator) display(name tokens.Name) string {
	if target, ok := presetTarget(name); ok {
		preset := c.svc.ActivePreset(target)
		if c.values != nil {
			if label, ok := c.values.Get(preset, aliases.TypeSpring); ok {
				return label
			}
		}
		return preset
	}
	return c.svc.Get(name).String()
}

func (c *configurator) choices(name tokens.Name) []choice {
	ref := c.svc.Reference()
	switch name.Category() {
	case tokens.CategoryPreset:
		names := append(ref.PresetNames(), tokens.Custom)
		out := make([]choice, 0, len(names))
		for _, n := range names {
			label := n
			if c.values != nil {
				if l, ok := c.values.Get(n, aliases.TypeSpring); ok {
					label = l
				}
			}
			out = append(out, choice{key: n, value: n, label: label})
		}
		return out
	case tokens.CategoryDuration:
		return fromOptions(ref.DurationOptions())
	case tokens.CategoryEasing:
		return fromOptions(ref.MotionOptions())
	default:
		return nil
	}
}

// cycle selects the neighbouring choice of the current row.
func (c *configurator) cycle(ctx context.Context, delta int) (string, error) {
	name := c.current()
	opts := c.choices(name)
	if len(opts) == 0 {
		return "", fmt.Errorf("%s has no preset values; press c to enter one", name)
	}
	if !c.editable(name) {
		return "", tokens.ErrDerivedToken
	}

	idx := -1
	if target, ok := presetTarget(name); ok {
		active := c.svc.ActivePreset(target)
		for i, o := range opts {
			if o.key == active {
				idx = i
			}
		}
	} else {
		value := c.svc.Get(name).String()
		for i, o := range opts {
			if o.value == value {
				idx = i
			}
		}
	}
	var next choice
	switch {
	case idx < 0 && delta < 0:
		next = opts[len(opts)-1]
	case idx < 0:
		next = opts[0]
	default:
		next = opts[(idx+delta+len(opts))%len(opts)]
	}

	if target, ok := presetTarget(name); ok {
		if err := c.svc.ApplyPreset(ctx, target, next.key); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s", c.label(name), next.label), nil
	}
	if err := c.svc.Set(ctx, name, tokens.Text(next.value)); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %s", c.label(name), next.label), nil
}

// setCustom stores a free-form value. Numbers are kept numeric.
func (c *configurator) setCustom(ctx context.Context, raw string) (string, error) {
	name := c.current()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty value for %s", name)
	}
	if target, ok := presetTarget(name); ok {
		if err := c.svc.ApplyPreset(ctx, target, raw); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s", c.label(name), raw), nil
	}

	value := tokens.Text(raw)
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		value = tokens.Number(f)
	}
	if err := c.svc.Set(ctx, name, value); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s = %s", c.label(name), value.String()), nil
}

// rename stores a display label for the current row.
func (c *configurator) rename(ctx context.Context, label string) (string, error) {
	if c.names == nil {
		return "", fmt.Errorf("aliases are not available")
	}
	name := c.current()
	if err := c.names.Set(ctx, name, strings.TrimSpace(label)); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s renamed to %q", name, c.names.Get(name)), nil
}

// resetAliases restores both alias tables. The user already confirmed in
// the UI, so the confirmation approves unconditionally.
func (c *configurator) resetAliases(ctx context.Context) (string, error) {
	approve := func(context.Context, string) bool { return true }
	if c.names != nil {
		if err := c.names.Reset(ctx, approve); err != nil {
			return "", err
		}
	}
	if c.values != nil {
		if err := c.values.Reset(ctx, approve); err != nil {
			return "", err
		}
	}
	return "aliases restored to defaults", nil
}

func fromOptions(opts []tokens.Option) []choice {
	out := make([]choice, 0, len(opts))
	for _, o := range opts {
		out = append(out, choice{key: o.Key, value: o.Value, label: o.Label})
	}
	return out
}

func presetTarget(name tokens.Name) (tokens.Target, bool) {
	for _, t := range tokens.Targets() {
		if t.PresetName() == name {
			return t, true
		}
	}
	return "", false
}
