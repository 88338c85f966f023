package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefaultIsIdempotent(t *testing.T) {
	assert.NotPanics(t, RegisterDefault)
	assert.NotPanics(t, RegisterDefault)

	families, err := Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestSolvesCounter(t *testing.T) {
	RegisterDefault()
	before := testutil.ToFloat64(Solves.WithLabelValues("restricted", "solved"))
	Solves.WithLabelValues("restricted", "solved").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Solves.WithLabelValues("restricted", "solved")))
}
