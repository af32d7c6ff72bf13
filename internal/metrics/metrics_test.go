package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSetActiveModel_KeepsSingleVersion(t *testing.T) {
	SetActiveModel("v1", "full", 10)
	SetActiveModel("v2", "full", 12)

	assert.Equal(t, 1, testutil.CollectAndCount(ModelInfo))
	assert.Equal(t, 1.0, testutil.ToFloat64(ModelInfo.WithLabelValues("v2", "full")))
	assert.Equal(t, 12.0, testutil.ToFloat64(TrainingSamples))
}
