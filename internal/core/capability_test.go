package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uyuni-actions/internal/types"
)

func TestParseCapabilities(t *testing.T) {
	caps, err := ParseCapabilities([]string{
		"packages.update(2)=1, packages.verify(1)=1",
		"packages.setLocks(1)=1",
		"",
	})
	require.NoError(t, err)

	want := types.Capabilities{
		"packages.update":   {Version: 2, Value: 1},
		"packages.verify":   {Version: 1, Value: 1},
		"packages.setLocks": {Version: 1, Value: 1},
	}
	if diff := cmp.Diff(want, caps); diff != "" {
		t.Fatalf("unexpected capabilities (-want +got):\n%s", diff)
	}
	assert.True(t, SupportsMultiarch(caps))
}

func TestParseCapabilitiesLaterEntryWins(t *testing.T) {
	caps, err := ParseCapabilities([]string{"packages.update(2)=1", "packages.update(1)=1"})
	require.NoError(t, err)
	assert.Equal(t, 1, caps.VersionOf(types.CapabilityPackagesUpdate))
	assert.False(t, SupportsMultiarch(caps))
}

func TestParseCapabilitiesRejectsMalformed(t *testing.T) {
	for _, header := range []string{"packages.update", "packages.update(x)=1", "(2)=1", "packages.update(2)"} {
		_, err := ParseCapabilities([]string{header})
		assert.Error(t, err, header)
	}
}

func TestSupportsMultiarchNilCapabilities(t *testing.T) {
	assert.False(t, SupportsMultiarch(nil))
}
