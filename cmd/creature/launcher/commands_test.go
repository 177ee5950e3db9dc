package launcher

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/creature-flatdata/creature"
	"github.com/rony4d/creature-flatdata/store"
)

const rigJSON = "../../../creature/testdata/rig.json"

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	a := newApp()
	a.Writer = &out
	a.ErrWriter = &logs
	err := a.Run(append([]string{"creature"}, args...))
	return out.String(), err
}

func TestCommands_ConvertInspectCatalog(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "catalog")
	bin := filepath.Join(dir, "rig.bin")

	out, err := runApp(t, "convert", "--store.dir", catalog, "--store.name", "walker", rigJSON, bin)
	require.NoError(t, err)
	require.Contains(t, out, "Serialized flat binary file to: "+bin)
	require.Contains(t, out, `Stored as "walker"`)
	written, err := os.ReadFile(bin)
	require.NoError(t, err)

	out, err = runApp(t, "inspect", bin)
	require.NoError(t, err)
	require.Contains(t, out, "mesh:      4 points, 2 regions")
	require.Contains(t, out, "skeleton:  2 bones")
	require.Contains(t, out, "animation: 2 clips")
	require.Contains(t, out, "uv swaps:  1 meshes")
	require.Contains(t, out, "anchors:   1 points")

	out, err = runApp(t, "inspect", "--json", "--store.dir", catalog, "--catalog", "walker")
	require.NoError(t, err)
	var dumped creature.Document
	require.NoError(t, json.Unmarshal([]byte(out), &dumped))
	data, err := os.ReadFile(rigJSON)
	require.NoError(t, err)
	parsed, err := creature.ParseJSON(data)
	require.NoError(t, err)
	require.Equal(t, parsed, &dumped)

	out, err = runApp(t, "catalog", "list", "--store.dir", catalog)
	require.NoError(t, err)
	require.Contains(t, out, "walker")

	copied := filepath.Join(dir, "copy.bin")
	_, err = runApp(t, "catalog", "get", "--store.dir", catalog, "walker", copied)
	require.NoError(t, err)
	got, err := os.ReadFile(copied)
	require.NoError(t, err)
	require.Equal(t, written, got)

	_, err = runApp(t, "catalog", "delete", "--store.dir", catalog, "walker")
	require.NoError(t, err)
	out, err = runApp(t, "catalog", "list", "--store.dir", catalog)
	require.NoError(t, err)
	require.Empty(t, out)

	_, err = runApp(t, "catalog", "get", "--store.dir", catalog, "walker", copied)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCommands_Usage(t *testing.T) {
	for name, args := range map[string][]string{
		"convert":        {"convert", rigJSON},
		"inspect":        {"inspect"},
		"inspect both":   {"inspect", "--catalog", "x", "rig.bin"},
		"catalog get":    {"catalog", "get", "x"},
		"catalog delete": {"catalog", "delete"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := runApp(t, args...)
			require.ErrorIs(t, err, errUsage)
		})
	}
}

func TestCommands_ConvertInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"mesh": {}`), 0o600))

	_, err := runApp(t, "convert", in, filepath.Join(dir, "out.bin"))
	require.ErrorIs(t, err, creature.ErrInvalidCreatureJSON)
	require.NoFileExists(t, filepath.Join(dir, "out.bin"))
}
