package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immoxperts/server/internal/models"
)

func TestSessionsCreateAndGet(t *testing.T) {
	sessions := NewSessions(nil)
	defer sessions.CloseAll()

	id, machine := sessions.Create(models.DeviceTouch)
	require.NotEmpty(t, id)
	require.NotNil(t, machine)

	got, ok := sessions.Get(id)
	require.True(t, ok)
	assert.Same(t, machine, got)
	assert.Equal(t, SurfaceBottomSheet, got.View().Surface)

	_, ok = sessions.Get("nope")
	assert.False(t, ok)
}

func TestSessionIDsAreUnique(t *testing.T) {
	sessions := NewSessions(nil)
	defer sessions.CloseAll()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, _ := sessions.Create(models.DeviceDesktop)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
	assert.Equal(t, 100, sessions.Len())
}

func TestSessionsCloseResetsMachine(t *testing.T) {
	sessions := NewSessions(nil)
	defer sessions.CloseAll()

	id, machine := sessions.Create(models.DeviceDesktop)
	feature := parcelFeature()
	machine.Click(&feature)
	require.NotNil(t, machine.Halo().Current())

	require.True(t, sessions.Close(id))
	assert.Nil(t, machine.Halo().Current())
	assert.Equal(t, 0, sessions.Len())

	_, ok := sessions.Get(id)
	assert.False(t, ok)
	assert.False(t, sessions.Close(id))
}

func TestCloseAllEndsEverySession(t *testing.T) {
	sessions := NewSessions(nil)

	_, first := sessions.Create(models.DeviceDesktop)
	_, second := sessions.Create(models.DeviceTouch)
	feature := parcelFeature()
	first.Click(&feature)
	second.Click(&feature)

	sessions.CloseAll()
	assert.Equal(t, 0, sessions.Len())
	assert.Nil(t, first.Halo().Current())
	assert.Nil(t, second.Halo().Current())
}
