package stylevars

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptokens "github.com/alexisbeaulieu97/motionkit/internal/application/tokens"
	domaintokens "github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
	"github.com/alexisbeaulieu97/motionkit/internal/infrastructure/events"
	logginginfra "github.com/alexisbeaulieu97/motionkit/internal/infrastructure/logging"
)

func TestSheetFollowsTokenService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	logger := logginginfra.NewNoOpLogger()
	publisher := events.NewLoggingPublisher(logger)

	sheet, err := NewSheet(publisher)
	require.NoError(t, err)
	defer sheet.Close()

	var seen []string
	stop := sheet.Watch(func(vars map[string]string) {
		seen = append(seen, vars["--accordion-arrow-mass"])
	})

	svc := apptokens.New(domaintokens.Set{}, domaintokens.StaticDefaults(), domaintokens.Reference{}, publisher, logger)
	require.NoError(t, svc.Set(ctx, domaintokens.TargetArrow.Mass(), domaintokens.Text("2")))

	value, ok := sheet.Lookup("--accordion-arrow-mass")
	require.True(t, ok)
	assert.Equal(t, "2", value)
	assert.Equal(t, []string{"2"}, seen)

	stop()
	require.NoError(t, svc.Set(ctx, domaintokens.TargetArrow.Mass(), domaintokens.Text("3")))
	assert.Equal(t, []string{"2"}, seen)

	value, _ = sheet.Lookup("--accordion-arrow-mass")
	assert.Equal(t, "3", value)
}

func TestSheetRenderIsSorted(t *testing.T) {
	t.Parallel()

	publisher := events.NewLoggingPublisher(logginginfra.NewNoOpLogger())
	sheet, err := NewSheet(publisher)
	require.NoError(t, err)

	svc := apptokens.New(domaintokens.Set{
		"SLIDER_TRANSITION_DURATION": domaintokens.Text("250ms"),
		"ACCORDION_ARROW_MASS":       domaintokens.Number(1),
	}, nil, domaintokens.Reference{}, publisher, nil)
	svc.Reset(context.Background())

	assert.Equal(t, ":root {\n  --accordion-arrow-mass: 1;\n  --slider-transition-duration: 250ms;\n}\n", sheet.Render())

	sheet.Close()
	require.NoError(t, svc.Set(context.Background(), "ACCORDION_ARROW_MASS", domaintokens.Text("9")))
	value, _ := sheet.Lookup("--accordion-arrow-mass")
	assert.Equal(t, "1", value)
}
