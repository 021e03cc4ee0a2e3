package artifacts_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inedo/teamcity-cli/pkg/artifacts"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, entries map[string]string) string {
	path := filepath.Join(t.TempDir(), "artifact.zip")
	file, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(file)
	for name, contents := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(contents))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, file.Close())
	return path
}

func readFile(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestLocalStore_Store(t *testing.T) {
	app := teamcity.ApplicationContext{ApplicationID: "widgets", ReleaseNumber: "1.0", BuildNumber: "3"}

	t.Run("writes under application, release and build", func(t *testing.T) {
		root := t.TempDir()
		store := artifacts.NewLocalStore(root)

		err := store.Store(context.Background(), app, "out", strings.NewReader("first"), false)
		require.NoError(t, err)

		dest := filepath.Join(root, "widgets", "1.0", "3", "out")
		assert.Equal(t, dest, store.Path(app, "out"))
		assert.Equal(t, "first", readFile(t, dest))

		entries, err := os.ReadDir(filepath.Dir(dest))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("overwrite replaces an existing artifact", func(t *testing.T) {
		store := artifacts.NewLocalStore(t.TempDir())
		require.NoError(t, store.Store(context.Background(), app, "out", strings.NewReader("first"), true))
		require.NoError(t, store.Store(context.Background(), app, "out", strings.NewReader("second"), true))
		assert.Equal(t, "second", readFile(t, store.Path(app, "out")))
	})

	t.Run("without overwrite an existing artifact is an error", func(t *testing.T) {
		store := artifacts.NewLocalStore(t.TempDir())
		require.NoError(t, store.Store(context.Background(), app, "out", strings.NewReader("first"), false))

		err := store.Store(context.Background(), app, "out", strings.NewReader("second"), false)
		assert.ErrorIs(t, err, artifacts.ErrArtifactExists)
		assert.Equal(t, "first", readFile(t, store.Path(app, "out")))
	})

	t.Run("path separators in names stay inside the root", func(t *testing.T) {
		root := t.TempDir()
		store := artifacts.NewLocalStore(root)
		assert.Equal(t, filepath.Join(root, "a_b", "x_y"), store.Path(teamcity.ApplicationContext{ApplicationID: "a/b"}, "x\\y"))
		assert.Equal(t, filepath.Join(root, "out"), store.Path(teamcity.ApplicationContext{ApplicationID: ".."}, "out"))
	})
}

func TestLocalStore_ExtractArchive(t *testing.T) {
	t.Run("extracts every entry", func(t *testing.T) {
		archive := writeZip(t, map[string]string{
			"bin/app.exe":     "binary",
			"config/app.json": "{}",
			"docs/readme.md":  "# readme",
		})
		target := filepath.Join(t.TempDir(), "out")

		err := artifacts.NewLocalStore("").ExtractArchive(context.Background(), archive, target)
		require.NoError(t, err)
		assert.Equal(t, "binary", readFile(t, filepath.Join(target, "bin", "app.exe")))
		assert.Equal(t, "{}", readFile(t, filepath.Join(target, "config", "app.json")))
		assert.Equal(t, "# readme", readFile(t, filepath.Join(target, "docs", "readme.md")))
	})

	t.Run("include patterns filter entries", func(t *testing.T) {
		archive := writeZip(t, map[string]string{
			"bin/app.exe":        "binary",
			"bin/nested/lib.dll": "library",
			"docs/readme.md":     "# readme",
		})
		target := t.TempDir()

		err := artifacts.NewLocalStore("", "bin/**/*.dll", "**/*.exe").ExtractArchive(context.Background(), archive, target)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(target, "bin", "app.exe"))
		assert.FileExists(t, filepath.Join(target, "bin", "nested", "lib.dll"))
		assert.NoFileExists(t, filepath.Join(target, "docs", "readme.md"))
	})

	t.Run("entries escaping the target are rejected", func(t *testing.T) {
		archive := writeZip(t, map[string]string{"../evil.txt": "nope"})
		parent := t.TempDir()
		target := filepath.Join(parent, "out")

		err := artifacts.NewLocalStore("").ExtractArchive(context.Background(), archive, target)
		assert.Error(t, err)
		assert.NoFileExists(t, filepath.Join(parent, "evil.txt"))
	})

	t.Run("invalid patterns are reported before extracting", func(t *testing.T) {
		archive := writeZip(t, map[string]string{"a.txt": "a"})
		err := artifacts.NewLocalStore("", "[").ExtractArchive(context.Background(), archive, t.TempDir())
		assert.EqualError(t, err, `invalid include pattern "["`)
	})

	t.Run("a file that is not a zip fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.zip")
		require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))
		err := artifacts.NewLocalStore("").ExtractArchive(context.Background(), path, t.TempDir())
		assert.Error(t, err)
	})
}
