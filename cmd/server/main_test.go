package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"config", "addr", "ops-addr", "log-level", "log-file"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestRootCommandRejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"unexpected"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	require.Error(t, cmd.Execute())
}

func TestRootCommandVersion(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetArgs([]string{"--version"})
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), version)
}
