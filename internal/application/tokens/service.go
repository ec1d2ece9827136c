package tokens

import (
	"context"
	"sync"

	domaintokens "github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

// Service owns the process-wide token state. Reads fall back through the
// active preset layer, the user override layer, the resolved set and the
// static widget defaults, in that order.
type Service struct {
	mu sync.RWMutex

	resolved  domaintokens.Set
	static    domaintokens.Set
	overrides domaintokens.Set
	presets   map[domaintokens.Target]presetLayer

	reference domaintokens.Reference
	publisher ports.EventPublisher
	logger    ports.Logger
}

// presetLayer holds the tokens written by ApplyPreset for one target.
type presetLayer struct {
	preset string
	values domaintokens.Set
}

// New constructs the service from the resolved set and the static defaults.
// A target whose resolved selector names a known preset starts with that
// preset applied, so its spring tokens are derived from the first read.
func New(resolved, static domaintokens.Set, ref domaintokens.Reference, publisher ports.EventPublisher, logger ports.Logger) *Service {
	if resolved == nil {
		resolved = domaintokens.Set{}
	}
	if static == nil {
		static = domaintokens.Set{}
	}
	s := &Service{
		resolved:  resolved.Clone(),
		static:    static.Clone(),
		overrides: domaintokens.Set{},
		reference: ref,
		publisher: publisher,
		logger:    logger,
	}
	s.presets = s.initialPresets()
	return s
}

// initialPresets builds the preset layers implied by the resolved selectors.
// Only the resolved layer counts: a static default selector is a display
// fallback, not a choice made by the token documents.
func (s *Service) initialPresets() map[domaintokens.Target]presetLayer {
	layers := map[domaintokens.Target]presetLayer{}
	for _, target := range domaintokens.Targets() {
		selector, ok := s.resolved[target.PresetName()]
		if !ok {
			continue
		}
		if layer, ok := s.presetLayerFor(target, selector.String()); ok {
			layers[target] = layer
		}
	}
	return layers
}

// presetLayerFor returns the layer ApplyPreset installs for preset, or false
// when the reference tables do not know it.
func (s *Service) presetLayerFor(target domaintokens.Target, preset string) (presetLayer, bool) {
	values, ok := s.reference.Preset(preset)
	if !ok {
		return presetLayer{}, false
	}
	triple := values.Strings()
	layer := presetLayer{preset: preset, values: domaintokens.Set{
		target.PresetName(): domaintokens.Text(preset),
	}}
	for i, name := range target.SpringNames() {
		layer.values[name] = domaintokens.Text(triple[i])
	}
	return layer, true
}

// Reference returns the base tables the service was built from.
func (s *Service) Reference() domaintokens.Reference {
	return s.reference
}

// Get returns the current value of name, or the zero Literal when no layer
// knows it.
func (s *Service) Get(name domaintokens.Name) domaintokens.Literal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, _ := s.lookupLocked(name)
	return value
}

// Lookup is Get with an explicit found flag.
func (s *Service) Lookup(name domaintokens.Name) (domaintokens.Literal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookupLocked(name)
}

func (s *Service) lookupLocked(name domaintokens.Name) (domaintokens.Literal, bool) {
	for _, layer := range s.presets {
		if value, ok := layer.values[name]; ok {
			return value, true
		}
	}
	if value, ok := s.overrides[name]; ok {
		return value, true
	}
	if value, ok := s.resolved[name]; ok {
		return value, true
	}
	value, ok := s.static[name]
	return value, ok
}

// Snapshot returns the merged view of every layer.
func (s *Service) Snapshot() domaintokens.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() domaintokens.Set {
	out := s.static.Merge(s.resolved).Merge(s.overrides)
	for _, layer := range s.presets {
		for name, value := range layer.values {
			out[name] = value
		}
	}
	return out
}

// Overrides returns a copy of the user override layer.
func (s *Service) Overrides() domaintokens.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overrides.Clone()
}

// SetAll replaces the user override layer. Callers merge before calling.
// Entries for tokens owned by an active preset must carry the preset value;
// anything else fails with ErrDerivedToken and leaves the state untouched.
func (s *Service) SetAll(ctx context.Context, mapping domaintokens.Set) error {
	s.mu.Lock()
	next := domaintokens.Set{}
	for name, value := range mapping {
		if target, layer, ok := s.ownerLocked(name); ok {
			if layer.values[name] != value {
				s.mu.Unlock()
				return domaintokens.ErrDerivedToken.WithContext(map[string]interface{}{
					"token":  string(name),
					"target": string(target),
					"preset": layer.preset,
				})
			}
			continue
		}
		next[name] = value
	}
	s.overrides = next
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Debug(ctx, "token overrides replaced", "overrides", len(next))
	}
	s.propagate(ctx, snapshot)
	return nil
}

// Set merges a single value into the override layer and calls SetAll.
func (s *Service) Set(ctx context.Context, name domaintokens.Name, value domaintokens.Literal) error {
	merged := s.Overrides()
	merged[name] = value
	return s.SetAll(ctx, merged)
}

// ApplyPreset writes the preset triple into the target's spring tokens and
// marks them derived. The Custom selector detaches the target: the current
// values move into the override layer and become editable again.
func (s *Service) ApplyPreset(ctx context.Context, target domaintokens.Target, preset string) error {
	target, err := domaintokens.ParseTarget(string(target))
	if err != nil {
		return err
	}

	s.mu.Lock()
	if preset == domaintokens.Custom {
		if layer, ok := s.presets[target]; ok {
			for name, value := range layer.values {
				s.overrides[name] = value
			}
			delete(s.presets, target)
		}
		s.overrides[target.PresetName()] = domaintokens.Text(domaintokens.Custom)
	} else {
		layer, ok := s.presetLayerFor(target, preset)
		if !ok {
			s.mu.Unlock()
			return domaintokens.ErrUnknownPreset.WithContext(map[string]interface{}{
				"target": string(target),
				"preset": preset,
			})
		}
		for name := range layer.values {
			delete(s.overrides, name)
		}
		s.presets[target] = layer
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info(ctx, "preset applied", "target", string(target), "preset", preset)
	}
	publish(ctx, s.publisher, s.logger, ports.EventPresetApplied, map[string]interface{}{
		"target": string(target),
		"preset": preset,
	})
	s.propagate(ctx, snapshot)
	return nil
}

// IsDerived reports whether name is currently owned by an active preset.
func (s *Service) IsDerived(name domaintokens.Name) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, _, ok := s.ownerLocked(name)
	return ok
}

// ActivePreset returns the preset selected for target, or Custom when the
// target is detached.
func (s *Service) ActivePreset(target domaintokens.Target) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if layer, ok := s.presets[target]; ok {
		return layer.preset
	}
	value, ok := s.lookupLocked(target.PresetName())
	if !ok || value.String() == "" {
		return domaintokens.Custom
	}
	return value.String()
}

// Reset drops every override and restores the presets selected at startup.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	s.overrides = domaintokens.Set{}
	s.presets = s.initialPresets()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info(ctx, "token state reset")
	}
	s.propagate(ctx, snapshot)
}

// ownerLocked finds the preset layer owning name. The preset selector itself
// is owned too, so it can only change through ApplyPreset.
func (s *Service) ownerLocked(name domaintokens.Name) (domaintokens.Target, presetLayer, bool) {
	for target, layer := range s.presets {
		if _, ok := layer.values[name]; ok {
			return target, layer, true
		}
	}
	return "", presetLayer{}, false
}

// propagate publishes the new snapshot and then its style variables, as one
// synchronous batch.
func (s *Service) propagate(ctx context.Context, snapshot domaintokens.Set) {
	publish(ctx, s.publisher, s.logger, ports.EventTokensChanged, snapshot)
	publish(ctx, s.publisher, s.logger, ports.EventStyleVariables, snapshot.StyleVariables())
}

func publish(ctx context.Context, publisher ports.EventPublisher, logger ports.Logger, eventType string, payload interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, ports.Event{Type: eventType, Data: payload}); err != nil && logger != nil {
		logger.Warn(ctx, "failed to publish domain event", "event_type", eventType, "error", err)
	}
}
