package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestChunksPrintsEachChunk(t *testing.T) {
	out := execute(t, "chunks", "--seed", "3", "--count", "2")

	require.Contains(t, out, "chunk 5 ")
	require.Contains(t, out, "chunk 6 ")
	require.NotContains(t, out, "chunk 7 ")
	require.Contains(t, out, "   0 ")
}

func TestChunksDeterministicPerSeed(t *testing.T) {
	a := execute(t, "chunks", "--seed", "11", "--count", "3")
	b := execute(t, "chunks", "--seed", "11", "--count", "3")
	require.Equal(t, a, b)
}

func TestRunReportsFinalState(t *testing.T) {
	out := execute(t, "run", "--seed", "5", "--steps", "30", "--right")

	require.Contains(t, out, "outcome    playing")
	// 125px of running from x=400 crosses into chunk 1.
	require.True(t, strings.Contains(out, "chunks     current=1"), out)
}

func TestRunRejectsUnknownEffect(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"run", "--steps", "1", "--effect", "nope"})
	require.Error(t, rootCmd.Execute())
}
