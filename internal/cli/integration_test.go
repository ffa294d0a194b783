package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mtlsort/internal/cli"
	"github.com/yaklabco/mtlsort/pkg/fsutil"
	"github.com/yaklabco/mtlsort/pkg/reporter"
)

const (
	sceneOBJ = "o cube\nusemtl A\nf 1 2 3\nusemtl B\nf 2 3 4\nusemtl A\nf 3 4 5\n"
	sceneMTL = "newmtl A\nKd 1 0 0\nnewmtl B\nKd 0 1 0\nnewmtl C\nKd 0 0 1\n"

	wantOBJ = "o cube\nusemtl mat0\nf 1 2 3\nusemtl mat1\nf 2 3 4\nusemtl mat2\nf 3 4 5\n"
	wantMTL = "newmtl mat0\nKd 1 0 0\nnewmtl mat1\nKd 0 1 0\nnewmtl mat2\nKd 1 0 0\n"

	// defaultsConfig pins every file setting so a user or system config on
	// the test machine cannot change the outcome.
	defaultsConfig = `comments: keep
name_prefix: mat
max_name_length: 1023
backups:
  enabled: true
  mode: sidecar
`
)

type fixture struct {
	dir      string
	geometry string
	material string
	config   string
}

func newFixture(t *testing.T, geometry, material string) fixture {
	t.Helper()

	dir := t.TempDir()
	f := fixture{
		dir:      dir,
		geometry: filepath.Join(dir, "scene.obj"),
		material: filepath.Join(dir, "scene.mtl"),
		config:   filepath.Join(dir, "mtlsort.yaml"),
	}
	require.NoError(t, os.WriteFile(f.geometry, []byte(geometry), 0644))
	require.NoError(t, os.WriteFile(f.material, []byte(material), 0644))
	require.NoError(t, os.WriteFile(f.config, []byte(defaultsConfig), 0644))
	return f
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func readString(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestIntegration_SortInPlace(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sceneOBJ, sceneMTL)

	out, err := execute(t, "--config", f.config, "--color", "never", f.geometry, f.material)
	require.NoError(t, err)

	assert.Equal(t, wantOBJ, readString(t, f.geometry))
	assert.Equal(t, wantMTL, readString(t, f.material))
	assert.Equal(t, sceneOBJ, readString(t, f.geometry+fsutil.BackupSuffix))
	assert.Equal(t, sceneMTL, readString(t, f.material+fsutil.BackupSuffix))

	assert.Contains(t, out, "3 usages from 3 declarations, 1 duplicated, 1 dropped, 2 files written")
	assert.Contains(t, out, "(backup created)")
}

func TestIntegration_SortSubcommandMatchesRoot(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sceneOBJ, sceneMTL)

	_, err := execute(t, "sort", "--config", f.config, "--no-backups", f.geometry, f.material)
	require.NoError(t, err)

	assert.Equal(t, wantOBJ, readString(t, f.geometry))
	assert.Equal(t, wantMTL, readString(t, f.material))
	assert.NoFileExists(t, f.geometry+fsutil.BackupSuffix)
	assert.NoFileExists(t, f.material+fsutil.BackupSuffix)

	// A second run over sorted output reports nothing to write.
	out, err := execute(t, "sort", "--config", f.config, "--color", "never", f.geometry, f.material)
	require.NoError(t, err)
	assert.Contains(t, out, "already sorted")
	assert.Equal(t, wantOBJ, readString(t, f.geometry))
	assert.NoFileExists(t, f.geometry+fsutil.BackupSuffix)
}

func TestIntegration_DryRunDiff(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sceneOBJ, sceneMTL)

	out, err := execute(t, "sort", "--config", f.config, "--color", "never",
		"--dry-run", "--format", "diff", f.geometry, f.material)
	require.NoError(t, err)

	assert.Contains(t, out, "-usemtl A")
	assert.Contains(t, out, "+usemtl mat0")
	assert.Contains(t, out, "-newmtl C")
	assert.Contains(t, out, "2 files changed")

	assert.Equal(t, sceneOBJ, readString(t, f.geometry), "dry run must not write")
	assert.Equal(t, sceneMTL, readString(t, f.material), "dry run must not write")
	assert.NoFileExists(t, f.geometry+fsutil.BackupSuffix)
}

func TestIntegration_SeparateOutputs(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sceneOBJ, sceneMTL)
	geometryOut := filepath.Join(f.dir, "out.obj")
	materialOut := filepath.Join(f.dir, "out.mtl")

	_, err := execute(t, "--config", f.config,
		"--geometry-out", geometryOut, "--material-out", materialOut,
		f.geometry, f.material)
	require.NoError(t, err)

	assert.Equal(t, sceneOBJ, readString(t, f.geometry))
	assert.Equal(t, sceneMTL, readString(t, f.material))
	assert.Equal(t, wantOBJ, readString(t, geometryOut))
	assert.Equal(t, wantMTL, readString(t, materialOut))
}

func TestIntegration_PrefixAndComments(t *testing.T) {
	t.Parallel()

	geometry := "# usemtl B\nusemtl A\nf 1 2 3\n"
	f := newFixture(t, geometry, sceneMTL)

	_, err := execute(t, "--config", f.config, "--no-backups",
		"--prefix", "part_", "--comments", "strip", f.geometry, f.material)
	require.NoError(t, err)

	assert.Equal(t, "usemtl part_0\nf 1 2 3\n", readString(t, f.geometry))
	assert.Equal(t, "newmtl part_0\nKd 1 0 0\n", readString(t, f.material))
}

func TestIntegration_ConfigFileSettings(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sceneOBJ, sceneMTL)
	cfg := "name_prefix: m\nbackups:\n  enabled: false\n"
	require.NoError(t, os.WriteFile(f.config, []byte(cfg), 0644))

	_, err := execute(t, "--config", f.config, f.geometry, f.material)
	require.NoError(t, err)

	assert.Contains(t, readString(t, f.geometry), "usemtl m2\n")
	assert.NoFileExists(t, f.geometry+fsutil.BackupSuffix)

	// A flag beats the config file.
	g := newFixture(t, sceneOBJ, sceneMTL)
	require.NoError(t, os.WriteFile(g.config, []byte(cfg), 0644))

	_, err = execute(t, "--config", g.config, "--prefix", "x", g.geometry, g.material)
	require.NoError(t, err)
	assert.Contains(t, readString(t, g.geometry), "usemtl x0\n")
}

func TestIntegration_PlanJSON(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sceneOBJ, sceneMTL)

	out, err := execute(t, "plan", "--config", f.config, "--format", "json", f.geometry, f.material)
	require.NoError(t, err)

	var report reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.True(t, report.DryRun)
	require.Len(t, report.Materials, 3)
	assert.Equal(t, "A", report.Materials[0].Source)
	assert.Equal(t, "mat0", report.Materials[0].NewName)
	assert.Equal(t, "B", report.Materials[1].Source)
	assert.Equal(t, "A", report.Materials[2].Source)
	assert.Equal(t, 6, report.Materials[2].Line)
	assert.Equal(t, []string{"C"}, report.Dropped)

	assert.Equal(t, sceneOBJ, readString(t, f.geometry), "plan must not write")
}

func TestIntegration_PlanTable(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sceneOBJ, sceneMTL)

	out, err := execute(t, "plan", "--config", f.config, "--color", "never", f.geometry, f.material)
	require.NoError(t, err)

	assert.Contains(t, out, "NEW NAME")
	assert.Contains(t, out, "dropped: C")
	assert.Contains(t, out, "Dry run: no files were changed")
}

func TestIntegration_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		geometry string
		args     func(f fixture) []string
		want     int
	}{
		{
			name:     "unresolved usage",
			geometry: "usemtl A\nusemtl Missing\n",
			args:     func(f fixture) []string { return []string{"--config", f.config, f.geometry, f.material} },
			want:     cli.ExitDataError,
		},
		{
			name:     "missing input",
			geometry: sceneOBJ,
			args: func(f fixture) []string {
				return []string{"--config", f.config, filepath.Join(f.dir, "nope.obj"), f.material}
			},
			want: cli.ExitIOError,
		},
		{
			name:     "wrong argument count",
			geometry: sceneOBJ,
			args:     func(f fixture) []string { return []string{"sort", "--config", f.config, f.geometry} },
			want:     cli.ExitInvalidUsage,
		},
		{
			name:     "unknown flag",
			geometry: sceneOBJ,
			args:     func(f fixture) []string { return []string{"--bogus", f.geometry, f.material} },
			want:     cli.ExitInvalidUsage,
		},
		{
			name:     "unknown format",
			geometry: sceneOBJ,
			args: func(f fixture) []string {
				return []string{"--config", f.config, "--format", "xml", f.geometry, f.material}
			},
			want: cli.ExitConfigError,
		},
		{
			name:     "invalid comments flag",
			geometry: sceneOBJ,
			args: func(f fixture) []string {
				return []string{"--config", f.config, "--comments", "sometimes", f.geometry, f.material}
			},
			want: cli.ExitConfigError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, tt.geometry, sceneMTL)

			_, err := execute(t, tt.args(f)...)
			require.Error(t, err)
			assert.Equal(t, tt.want, cli.ExitCodeFromError(err))

			assert.Equal(t, tt.geometry, readString(t, f.geometry), "failed runs must not write")
			assert.Equal(t, sceneMTL, readString(t, f.material), "failed runs must not write")
		})
	}
}

func TestIntegration_InvalidConfigFile(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sceneOBJ, sceneMTL)
	require.NoError(t, os.WriteFile(f.config, []byte("comments: sometimes\n"), 0644))

	_, err := execute(t, "--config", f.config, f.geometry, f.material)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), f.config)
}

func TestIntegration_NoArgsPrintsHelp(t *testing.T) {
	t.Parallel()

	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Available Commands:")
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".mtlsort.yml")

	_, err := execute(t, "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, readString(t, path), "name_prefix: mat")

	_, err = execute(t, "init", "--output", path)
	require.Error(t, err, "init must not overwrite without --force")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))

	require.NoError(t, os.WriteFile(path, []byte("# custom\n"), 0644))
	_, err = execute(t, "init", "--force", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, readString(t, path), "backups:")

	jsonPath := filepath.Join(dir, "mtlsort.json")
	_, err = execute(t, "init", "--format", "json", "--output", jsonPath)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(readString(t, jsonPath)), &decoded))
	assert.Equal(t, "mat", decoded["name_prefix"])

	// The generated file is itself a valid configuration.
	f := newFixture(t, sceneOBJ, sceneMTL)
	_, err = execute(t, "--config", path, "--dry-run", f.geometry, f.material)
	require.NoError(t, err)
}
