package telemetry

import (
	"context"
	"testing"

	"github.com/sidrapp/sidr-be/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracingWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), &config.OtelConfig{ServiceName: "sidr-be"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSampleRatio(t *testing.T) {
	assert.Equal(t, 0.25, SampleRatio(0.25))
	assert.Equal(t, 0.0, SampleRatio(0))
	assert.Equal(t, 1.0, SampleRatio(-1))
	assert.Equal(t, 1.0, SampleRatio(3))
}
