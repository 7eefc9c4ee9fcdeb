package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestIncrementers(t *testing.T) {
	Register()
	assert.NotPanics(t, func() {
		IncAuthFailure("expired")
		IncUpstream("crypto", "ok")
		IncSignalsPublished("error")
	})
}

func TestGetMonitor_SetsPath(t *testing.T) {
	m := GetMonitor("/metrics")
	assert.NotNil(t, m)
	assert.NotNil(t, m.GetMetric(AuthFailures))
}
