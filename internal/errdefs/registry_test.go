package errdefs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistrySetGet(t *testing.T) {
	reg := NewRegistry()

	h := reg.Set("first line\nsecond line with detail")
	require.True(t, IsHandle(h))
	require.Equal(t, 1, reg.Len())

	got := reg.Get(h, false)
	require.Equal(t, "first line\nsecond line with detail", got)
	require.Equal(t, 1, reg.Len(), "get without clear keeps the entry")

	got = reg.Get(h, true)
	require.Equal(t, "first line\nsecond line with detail", got)
	require.Equal(t, 0, reg.Len(), "get with clear removes the entry")
}

func TestRegistryUnknownHandleEchoes(t *testing.T) {
	reg := NewRegistry()

	require.Equal(t, "stored-error:nope", reg.Get("stored-error:nope", true))
	require.Equal(t, "plain text", reg.Get("plain text", false))
}

func TestRegistryHandlesAreUnique(t *testing.T) {
	reg := NewRegistry()

	h1 := reg.Set("same message")
	h2 := reg.Set("same message")
	require.NotEqual(t, h1, h2)
}

func TestRegistryEvictsOldestAtCapacity(t *testing.T) {
	reg := NewRegistry()

	var handles []string
	for i := 0; i < registryCapacity+3; i++ {
		handles = append(handles, reg.Set(fmt.Sprintf("message %d", i)))
	}

	require.Equal(t, registryCapacity, reg.Len())

	// The three oldest are gone and echo their handle back.
	for i := 0; i < 3; i++ {
		require.Equal(t, handles[i], reg.Get(handles[i], false))
	}
	// The newest survive.
	last := handles[len(handles)-1]
	require.Equal(t, fmt.Sprintf("message %d", registryCapacity+2), reg.Get(last, false))
}
