package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQuestions = `{
  "tasas": [
    {"id": "t-1", "question": "¿Qué es la TEA?", "options": ["A", "B"], "correct": 0, "subtopic": "Tasas"},
    {"id": "t-2", "question": "¿Y la TNA?", "options": ["A", "B"], "correct": 1, "subtopic": "Conversión"}
  ]
}`

const testModules = `{"modules": [{"key": "tasas", "title": "Tasas de interés"}]}`

// withDatasets points configuration at fresh datasets and an in-memory
// history backend.
func withDatasets(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	qp := filepath.Join(dir, "questions.json")
	mp := filepath.Join(dir, "modules.json")
	require.NoError(t, os.WriteFile(qp, []byte(testQuestions), 0o644))
	require.NoError(t, os.WriteFile(mp, []byte(testModules), 0o644))

	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("REPASO_STORE_BACKEND", "memory")
	t.Setenv("REPASO_QUESTIONS_URL", qp)
	t.Setenv("REPASO_MODULES_URL", mp)
	t.Setenv("REPASO_LOG_LEVEL", "error")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestModulesCommand(t *testing.T) {
	withDatasets(t)

	out, err := execute(t, "modules")
	require.NoError(t, err)
	assert.Contains(t, out, "tasas")
	assert.Contains(t, out, "Tasas de interés")
	assert.Contains(t, out, "2 questions")
	assert.Contains(t, out, "Conversión")
}

func TestStatsCommand(t *testing.T) {
	withDatasets(t)

	out, err := execute(t, "stats", "tasas")
	require.NoError(t, err)
	assert.Contains(t, out, "Tasas de interés (tasas)")
	assert.Contains(t, out, "No answers yet.")

	_, err = execute(t, "stats", "nope")
	assert.Error(t, err)
}

func TestResetCommand(t *testing.T) {
	withDatasets(t)

	_, err := execute(t, "reset")
	assert.Error(t, err, "reset needs a module or --all")

	out, err := execute(t, "reset", "tasas")
	require.NoError(t, err)
	assert.Contains(t, out, "tasas: history cleared")
}

func TestResetFlagsDoNotCarryOver(t *testing.T) {
	withDatasets(t)

	out, err := execute(t, "reset", "--all", "--seen-only")
	require.NoError(t, err)
	assert.Contains(t, out, "tasas: seen questions cleared")

	_, err = execute(t, "reset")
	assert.Error(t, err, "--all from the previous run must not apply")

	out, err = execute(t, "reset", "tasas")
	require.NoError(t, err)
	assert.Contains(t, out, "tasas: history cleared", "--seen-only from the previous run must not apply")
}

func TestRedisBackendUnreachable(t *testing.T) {
	withDatasets(t)
	t.Setenv("REPASO_STORE_BACKEND", "redis")
	t.Setenv("REPASO_REDIS_ADDR", "127.0.0.1:1")
	t.Setenv("REPASO_LOAD_TIMEOUT", "500ms")

	_, err := execute(t, "modules")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}

func TestMissingDatasetFails(t *testing.T) {
	withDatasets(t)
	t.Setenv("REPASO_QUESTIONS_URL", filepath.Join(t.TempDir(), "missing.json"))

	_, err := execute(t, "modules")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "repaso")
}
