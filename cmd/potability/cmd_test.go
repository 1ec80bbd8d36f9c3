package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"potability/ml"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmdFlags(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"config", "model", "port"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"serve", "check", "version"})
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "log:\n  level: warn\n")
	modelPath, err := filepath.Abs(filepath.Join("..", "..", "ml", "testdata", "bundle.json"))
	require.NoError(t, err)

	out, err := execute(t, "check", "--config", cfgPath, "--model", modelPath)
	require.NoError(t, err)
	assert.Contains(t, out, "scaler:     standard")
	assert.Contains(t, out, "classifier: logistic_regression")
	assert.Contains(t, out, "zero input: "+ml.NotPotable.String())
}

func TestCheckCmdMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "model:\n  path: "+filepath.Join(dir, "absent.json")+"\n")

	_, err := execute(t, "check", "--config", cfgPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, ml.ErrArtifactNotFound)
}

func TestCheckCmdShapeMismatch(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "log:\n  level: info\n")
	modelPath := writeFile(t, dir, "model.json", `{
  "scaler": {"type": "standard", "mean": [0, 0, 0], "scale": [1, 1, 1]},
  "model": {"type": "logistic_regression", "coef": [1, 1, 1], "intercept": 0}
}`)

	_, err := execute(t, "check", "--config", cfgPath, "--model", modelPath)
	assert.ErrorIs(t, err, ml.ErrShapeMismatch)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "http:\n  port: 9000\nmodel:\n  path: a.json\n")

	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--model", "b.json", "--port", "9100"}))
	cfg, source, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, source)
	assert.Equal(t, "b.json", cfg.Model.Path)
	assert.Equal(t, 9100, cfg.Http.Port)
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "log:\n  level: info\n")

	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--port", "70000"}))
	_, _, err := loadConfig(cmd)
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "potability version")
	assert.Contains(t, out, "commit:")
}
