package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	clicontroller "github.com/YoshitsuguKoike/potionlab/internal/adapter/controller/cli"
)

// execute runs the command line against home and returns stdout and stderr
func execute(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), append([]string{"--home", home}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestExecute_CommitPersistsAcrossRuns(t *testing.T) {
	home := t.TempDir()

	out, _, err := execute(t, home, "commit", "failure", "iron", "heart", "sage")
	require.NoError(t, err)
	assert.Contains(t, out, "committed")
	assert.Contains(t, out, "Iron")

	out, _, err = execute(t, home, "-o", "json", "list")
	require.NoError(t, err)

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			Kind  string `json:"kind"`
			Combo struct {
				Metal string `json:"metal"`
				Organ string `json:"organ"`
				Herb  string `json:"herb"`
			} `json:"combo"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "failure", resp.Data[0].Kind)
	assert.Equal(t, "Iron", resp.Data[0].Combo.Metal)
	assert.Equal(t, "Heart", resp.Data[0].Combo.Organ)
	assert.Equal(t, "Sage", resp.Data[0].Combo.Herb)

	_, err = os.Stat(filepath.Join(home, "var", "state.json"))
	assert.NoError(t, err)
}

func TestExecute_ReportedErrorsAreNotRepeated(t *testing.T) {
	home := t.TempDir()

	out, stderr, err := execute(t, home, "commit", "success", "Unobtainium", "Heart", "Sage")
	require.Error(t, err)
	assert.True(t, clicontroller.IsReported(err))
	assert.Contains(t, out, "Error")
	assert.NotContains(t, stderr, "Error:")
}

func TestExecute_UnreportedErrorsGoToStderr(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "setting.json"), []byte("{not json"), 0o644))

	_, stderr, err := execute(t, home, "stats")
	require.Error(t, err)
	assert.Contains(t, stderr, "Error:")
	assert.Contains(t, stderr, "setting.json")
}

func TestExecute_VersionSkipsSession(t *testing.T) {
	home := filepath.Join(t.TempDir(), "never-created")

	out, _, err := execute(t, home, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "potionlab")

	_, statErr := os.Stat(home)
	assert.True(t, os.IsNotExist(statErr), "version must not create the home directory")
}

func TestExecute_BackupRoundTrip(t *testing.T) {
	home := t.TempDir()

	_, _, err := execute(t, home, "commit", "hint", "Gold", "Liver", "Mint", "-l", "cloudy")
	require.NoError(t, err)

	out, _, err := execute(t, home, "export", "--to", "file")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to file")

	_, _, err = execute(t, home, "commit", "success", "Iron", "Heart", "Sage")
	require.NoError(t, err)

	out, _, err = execute(t, home, "import", "--from", "file")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 trials from file")

	out, _, err = execute(t, home, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Mint")
	assert.NotContains(t, out, "Sage")
}

func TestConfigShow(t *testing.T) {
	home := t.TempDir()

	out, _, err := execute(t, home, "config", "show")
	require.NoError(t, err)

	var eff EffectiveConfig
	require.NoError(t, yaml.Unmarshal([]byte(out), &eff))
	assert.Equal(t, "default", eff.Meta.Source)
	assert.Equal(t, home, eff.Paths.Home)
	assert.Equal(t, "file", eff.Paths.Store)
	assert.Equal(t, filepath.Join(home, "var", "state.json"), eff.Paths.StatePath)
	assert.Equal(t, "file", eff.Backup.Medium)
	assert.Equal(t, "text", eff.Output)
	assert.NotEmpty(t, eff.Research.MatrixPrecedence)

	out, _, err = execute(t, home, "config", "show", "--json")
	require.NoError(t, err)
	var asJSON EffectiveConfig
	require.NoError(t, json.Unmarshal([]byte(out), &asJSON))
	assert.Equal(t, eff, asJSON)
}

func TestConfigInit(t *testing.T) {
	home := filepath.Join(t.TempDir(), "lab")

	out, _, err := execute(t, home, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "setting.json")

	data, err := os.ReadFile(filepath.Join(home, "setting.json"))
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "file", raw["store"])

	_, stderr, err := execute(t, home, "config", "init")
	require.Error(t, err)
	assert.Contains(t, stderr, "already exists")

	_, _, err = execute(t, home, "config", "init", "--force")
	require.NoError(t, err)

	out, _, err = execute(t, home, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "source: json")
}

func TestExecute_HelpSkipsSession(t *testing.T) {
	home := filepath.Join(t.TempDir(), "never-created")

	out, _, err := execute(t, home, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "Trial log:")

	_, statErr := os.Stat(home)
	assert.True(t, os.IsNotExist(statErr))
}
