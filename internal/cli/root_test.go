package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_RejectsInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "voicings", "E", "major")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestVoicings_TextOutput(t *testing.T) {
	out, err := execute(t, "voicings", "E", "minor")
	require.NoError(t, err)
	assert.Contains(t, out, "E minor voicings")
	assert.Contains(t, out, "strings 0-1-2")
}

func TestVoicings_UnsupportedChord(t *testing.T) {
	_, err := execute(t, "voicings", "E", "klingon")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestBoxes_JSONEnvelope(t *testing.T) {
	out, err := execute(t, "--format", "json", "boxes", "A", "minor-pentatonic", "--target", "b5")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestBoxes_UnknownTargetTone(t *testing.T) {
	_, err := execute(t, "boxes", "A", "minor-pentatonic", "--target", "b13")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestProgressions_TextOutput(t *testing.T) {
	out, err := execute(t, "progressions", "A", "--target", "b5")
	require.NoError(t, err)
	assert.Contains(t, out, "flavor: minor-blues")
	assert.Contains(t, out, "12-Bar Blues")
}

func TestCheatSheet_TextOutput(t *testing.T) {
	out, err := execute(t, "cheatsheet", "A", "--target", "b5")
	require.NoError(t, err)
	assert.Contains(t, out, "A7")
	assert.Contains(t, out, "note pool:")
}

func TestLog_SaveListShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "practice.db")

	out, err := execute(t, "log", "save", "A", "--db", db, "--target", "b5")
	require.NoError(t, err)
	assert.Contains(t, out, "saved session")

	out, err = execute(t, "log", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "A minor-pentatonic")
}
