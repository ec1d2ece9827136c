package tokens

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	cblog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaintokens "github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
	logginginfra "github.com/alexisbeaulieu97/motionkit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

type stubSource struct {
	ref    domaintokens.Reference
	defs   domaintokens.Definitions
	refErr error
}

func (s stubSource) Reference(context.Context) (domaintokens.Reference, error) {
	return s.ref, s.refErr
}

func (s stubSource) Definitions(context.Context) (domaintokens.Definitions, error) {
	return s.defs, nil
}

func definition(name, raw string) domaintokens.Definition {
	return domaintokens.Definition{Name: domaintokens.Name(name), Value: domaintokens.ParseValue(raw)}
}

func TestInitializerLogsResolutionWarnings(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := logginginfra.New(logginginfra.Options{
		Writer:    buf,
		Level:     "debug",
		Layer:     "application",
		Component: "resolver",
		Formatter: cblog.JSONFormatter,
	})
	require.NoError(t, err)

	source := stubSource{
		ref: testReference(),
		defs: domaintokens.Definitions{
			definition("ACCORDION_CONTENT_PRESET", "stiff"),
			definition("ACCORDION_CONTENT_DAMPING", "tokens.spring('stiff').damping"),
			definition("ACCORDION_ARROW_MASS", "tokens.spring('nonexistent').mass"),
		},
	}
	publisher := &recordingPublisher{}

	svc, result, err := NewInitializer(source, publisher, logger).NewService(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)

	assert.Equal(t, domaintokens.Number(22.22), result.Resolved["ACCORDION_CONTENT_DAMPING"])
	assert.Equal(t, "22.22", svc.Get("ACCORDION_CONTENT_DAMPING").String())
	assert.Equal(t, "tokens.spring('nonexistent').mass", svc.Get("ACCORDION_ARROW_MASS").String())
	assert.Equal(t, "stiff", svc.ActivePreset(domaintokens.TargetContent))
	assert.True(t, svc.IsDerived("ACCORDION_CONTENT_DAMPING"))
	assert.False(t, svc.IsDerived("ACCORDION_ARROW_MASS"))
	assert.Equal(t, []string{ports.EventTokensResolved}, publisher.types())

	var warned, completed bool
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		switch entry["event"] {
		case "resolution_warning":
			warned = true
			assert.Equal(t, "warn", entry["level"])
			assert.Equal(t, "ACCORDION_ARROW_MASS", entry["token"])
			assert.Equal(t, domaintokens.ReasonUnknownPreset, entry["reason"])
		case "resolution_complete":
			completed = true
			assert.Equal(t, "debug", entry["level"])
		}
	}
	assert.True(t, warned, "resolution warning must be logged")
	assert.True(t, completed, "successful resolution must be logged")
}

func TestInitializerPropagatesSourceErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("unreadable")
	_, err := NewInitializer(stubSource{refErr: boom}, nil, logginginfra.NewNoOpLogger()).Resolve(context.Background())
	require.ErrorIs(t, err, boom)
}
