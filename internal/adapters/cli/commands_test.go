package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/complex-planner/internal/application/planner"
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
)

// setupCLI points the CLI at a temporary config file, database and home
// directory and returns the config path
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfgPath := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`database:
  type: sqlite
  path: %s
logging:
  level: error
planner:
  default_game: x3tc
`, filepath.Join(dir, "planner.db"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	return cfgPath
}

func runCLI(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestPlanCommand_JSONReport(t *testing.T) {
	// Arrange
	cfgPath := setupCLI(t)

	// Act
	out, err := runCLI(t, cfgPath, "plan", "-b", "spp-argon-m:2", "--no-auto-fill", "--json")

	// Assert
	require.NoError(t, err)
	var report planner.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "x3tc", report.Game)
	assert.False(t, report.AutoFill)
	require.Len(t, report.Buildings, 1)
	assert.Equal(t, "spp-argon-m", report.Buildings[0].BuildingID)
	assert.Equal(t, 2, report.Buildings[0].Quantity)
	assert.Equal(t, 2, report.TotalCount)
	assert.NotEmpty(t, report.TemplateCode)
}

func TestPlanCommand_RejectsUnknownBuilding(t *testing.T) {
	// Arrange
	cfgPath := setupCLI(t)

	// Act
	_, err := runCLI(t, cfgPath, "plan", "-b", "no-such-factory")

	// Assert
	assert.Error(t, err)
}

func TestTemplateCommands_EncodeValidateDecode(t *testing.T) {
	// Arrange
	cfgPath := setupCLI(t)
	docPath := filepath.Join(filepath.Dir(cfgPath), "complex.json")
	_, err := runCLI(t, cfgPath, "plan", "-b", "spp-argon-m:1", "--no-auto-fill", "-o", docPath)
	require.NoError(t, err)

	// Act
	encoded, err := runCLI(t, cfgPath, "template", "encode", docPath)

	// Assert
	require.NoError(t, err)
	code := string(bytes.TrimSpace([]byte(encoded)))
	require.NotEmpty(t, code)

	// Act
	validated, err := runCLI(t, cfgPath, "template", "validate", code)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, validated, "Template code is valid")

	// Act
	decoded, err := runCLI(t, cfgPath, "--json", "template", "decode", code)

	// Assert
	require.NoError(t, err)
	var report planner.Report
	require.NoError(t, json.Unmarshal([]byte(decoded), &report))
	assert.Equal(t, code, report.TemplateCode)
	assert.Equal(t, 1, report.TotalCount)
}

func TestTemplateValidate_InvalidCode(t *testing.T) {
	// Arrange
	cfgPath := setupCLI(t)

	// Act
	_, err := runCLI(t, cfgPath, "template", "validate", "AA==")

	// Assert
	assert.Error(t, err)
}

func TestComplexCommands_SaveListShowDelete(t *testing.T) {
	// Arrange
	cfgPath := setupCLI(t)
	docPath := filepath.Join(filepath.Dir(cfgPath), "complex.json")
	_, err := runCLI(t, cfgPath, "plan", "-b", "spp-argon-m:1", "--no-auto-fill", "-o", docPath)
	require.NoError(t, err)

	// Act
	saved, err := runCLI(t, cfgPath, "--json", "complex", "save", docPath, "--name", "Energy Hub")

	// Assert
	require.NoError(t, err)
	var resp planner.SaveComplexResponse
	require.NoError(t, json.Unmarshal([]byte(saved), &resp))
	require.NotEmpty(t, resp.ID)

	// Act
	listed, err := runCLI(t, cfgPath, "--json", "complex", "list")

	// Assert
	require.NoError(t, err)
	var summaries []factorycomplex.Summary
	require.NoError(t, json.Unmarshal([]byte(listed), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "Energy Hub", summaries[0].Name)
	assert.Equal(t, "x3tc", summaries[0].GameID)

	// Act
	shown, err := runCLI(t, cfgPath, "--json", "complex", "show", "Energy Hub")

	// Assert
	require.NoError(t, err)
	var report planner.Report
	require.NoError(t, json.Unmarshal([]byte(shown), &report))
	assert.Equal(t, resp.ID, report.ID)

	// Act
	deleted, err := runCLI(t, cfgPath, "complex", "delete", resp.ID)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, deleted, "deleted")
	listed, err = runCLI(t, cfgPath, "complex", "list")
	require.NoError(t, err)
	assert.Contains(t, listed, "No complexes stored")
}

func TestConfigCommands_FactionExclusions(t *testing.T) {
	// Arrange
	cfgPath := setupCLI(t)

	// Act
	_, errExclude := runCLI(t, cfgPath, "config", "exclude-faction", "teladi")
	_, errUnknown := runCLI(t, cfgPath, "config", "exclude-faction", "xenon-hive")
	shown, errShow := runCLI(t, cfgPath, "config", "show")

	// Assert
	require.NoError(t, errExclude)
	assert.Error(t, errUnknown)
	require.NoError(t, errShow)
	assert.Contains(t, shown, "Excluded Factions: teladi")

	// Act
	_, err := runCLI(t, cfgPath, "config", "include-faction", "teladi")
	shown, _ = runCLI(t, cfgPath, "config", "show")

	// Assert
	require.NoError(t, err)
	assert.NotContains(t, shown, "Excluded Factions: teladi")
}
