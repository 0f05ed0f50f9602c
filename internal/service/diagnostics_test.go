package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcity/gateway/internal/domain"
)

func TestDiagnostics_AllHealthy(t *testing.T) {
	d := NewDiagnostics(&fakeAir{}, newFakeTraffic(), newFakeMobility(), &fakeEnergy{}, time.Second, quietLogger())

	report := d.Check(context.Background())

	assert.True(t, report.Healthy)
	require.Len(t, report.Backends, 4)
	for i, backend := range []string{domain.BackendAir, domain.BackendTraffic, domain.BackendMobility, domain.BackendEnergy} {
		assert.Equal(t, backend, report.Backends[i].Backend)
		assert.True(t, report.Backends[i].Healthy)
		assert.Empty(t, report.Backends[i].Error)
	}
}

func TestDiagnostics_ReportsFailureKind(t *testing.T) {
	energy := &fakeEnergy{err: domain.NewBackendError(domain.BackendEnergy, domain.KindUnreachable, errors.New("connection refused"))}
	traffic := newFakeTraffic()
	traffic.delay = 5 * time.Second
	d := NewDiagnostics(&fakeAir{}, traffic, newFakeMobility(), energy, 100*time.Millisecond, quietLogger())

	report := d.Check(context.Background())

	assert.False(t, report.Healthy)
	assert.True(t, report.Backends[0].Healthy)

	assert.False(t, report.Backends[1].Healthy)
	assert.Equal(t, "unreachable", report.Backends[1].Kind)

	assert.False(t, report.Backends[3].Healthy)
	assert.Equal(t, "unreachable", report.Backends[3].Kind)
	assert.Contains(t, report.Backends[3].Error, "connection refused")
}
