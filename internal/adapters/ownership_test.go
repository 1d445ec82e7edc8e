package adapters

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChownRecursiveRunsBinary(t *testing.T) {
	binary, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true binary not available")
	}
	adapter := ChownAdapter{Binary: binary}
	require.NoError(t, adapter.ChownRecursive(t.Context(), "squid:squid", t.TempDir()))
}

func TestChownRecursiveReportsFailure(t *testing.T) {
	binary, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false binary not available")
	}
	adapter := ChownAdapter{Binary: binary}
	err = adapter.ChownRecursive(t.Context(), "squid:squid", t.TempDir())
	require.Error(t, err)
}

func TestChownRecursiveValidatesArguments(t *testing.T) {
	adapter := NewChownAdapter()
	assert.Error(t, adapter.ChownRecursive(t.Context(), "", "/var/cache/squid"))
	assert.Error(t, adapter.ChownRecursive(t.Context(), "squid:squid", " "))
}
