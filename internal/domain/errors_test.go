package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendError(t *testing.T) {
	err := NewBackendError(BackendTraffic, KindUnreachable, context.DeadlineExceeded)

	assert.Equal(t, "traffic: unreachable: context deadline exceeded", err.Error())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "energy: not_found", NewBackendError(BackendEnergy, KindNotFound, nil).Error())
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("gateway: %w", NewBackendError(BackendAir, KindProtocolFault, errors.New("bad envelope")))

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindProtocolFault, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)

	assert.True(t, IsUnreachable(NewBackendError(BackendMobility, KindUnreachable, nil)))
	assert.False(t, IsUnreachable(wrapped))
	assert.True(t, IsNotFound(NewBackendError(BackendMobility, KindNotFound, nil)))
	assert.False(t, IsNotFound(nil))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "unreachable", KindUnreachable.String())
	assert.Equal(t, "protocol_fault", KindProtocolFault.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "unknown", ErrorKind(42).String())
}
