package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/config"
)

func newDeps(t *testing.T) *Dependencies {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Data.Dir = t.TempDir()
	return BuildDependencies(cfg, zerolog.Nop())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDataDirectory(t *testing.T) {
	deps := newDeps(t)
	dir := deps.Config.Data.Dir
	writeFile(t, dir, "users.json", `[{"id":"user_001","name":"Alex"}]`)
	writeFile(t, dir, "events.json", `[{"id":"event_001","title":"Old"}]`)
	writeFile(t, dir, "events_v2.json", `{"events":[{"id":"event_002","title":"New"}]}`)
	writeFile(t, dir, "README.md", `not a fixture`)

	result, err := deps.LoadData(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"users": 1, "events": 1}, result.Collections)
	assert.Equal(t, []string{"event_002"}, deps.Store.IDs(models.KindEvent))
}

func TestLoadDataSingleCollectionFile(t *testing.T) {
	deps := newDeps(t)
	path := writeFile(t, t.TempDir(), "locations.json", `[{"id":"loc_004","name":"Hall","building":"CB02"}]`)

	_, err := deps.LoadData(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"loc_004"}, deps.Store.IDs(models.KindLocation))
}

func TestLoadDataSnapshotFile(t *testing.T) {
	deps := newDeps(t)
	path := writeFile(t, t.TempDir(), "uniconnect-demo-data.json",
		`{"users":[{"id":"user_002","name":"Blair"}],"societies":[{"id":"soc_001","name":"Chess"}]}`)

	result, err := deps.LoadData(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"users": 1, "societies": 1}, result.Collections)
}

func TestLoadDataCancelled(t *testing.T) {
	deps := newDeps(t)
	writeFile(t, deps.Config.Data.Dir, "users.json", `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := deps.LoadData(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadOrSeedFallsBackToDemoData(t *testing.T) {
	deps := newDeps(t)

	require.NoError(t, deps.LoadOrSeed(context.Background(), filepath.Join(t.TempDir(), "missing")))
	assert.NotEmpty(t, deps.Store.Users())
	assert.Empty(t, deps.IntegrityService.CheckIntegrity())
}

func TestLoadOrSeedReportsBrokenData(t *testing.T) {
	deps := newDeps(t)
	writeFile(t, deps.Config.Data.Dir, "users.json", `{broken`)

	err := deps.LoadOrSeed(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"users"`)
	assert.Empty(t, deps.Store.Users())
}

func TestExportStorageCreatesDirectory(t *testing.T) {
	deps := newDeps(t)
	dir := filepath.Join(t.TempDir(), "out", "nested")

	target, err := deps.ExportStorage(dir)
	require.NoError(t, err)

	path, err := target.SaveFile("users.json", []byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "users.json"), path)
}
