package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"gitlabtree/internal/adapters/filesystem"
	"gitlabtree/internal/adapters/sqlite"
	"gitlabtree/internal/application/commands"
)

func sampleEntries() []commands.Entry {
	return []commands.Entry{{
		Name: "platform", Kind: "Group", Path: "platform", URL: "https://gitlab.example.com/platform",
		Children: []commands.Entry{{
			Name: "api", Kind: "Project", Path: "platform/api", URL: "https://gitlab.example.com/platform/api",
		}},
	}}
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"cache.db", "cache.sqlite", "cache.SQLITE3"} {
		_, ok := newStore(filepath.Join(dir, name)).(*sqlite.SnapshotStore)
		assert.True(t, ok, "expected sqlite store for %s", name)
	}
	for _, name := range []string{"cache.json", "cache"} {
		_, ok := newStore(filepath.Join(dir, name)).(*filesystem.SnapshotStore)
		assert.True(t, ok, "expected file store for %s", name)
	}
}

func TestDescribeStore(t *testing.T) {
	dir := t.TempDir()

	t.Run("sqlite reports the write time", func(t *testing.T) {
		store := sqlite.NewSnapshotStore(filepath.Join(dir, "cache.db"))
		require.NoError(t, store.Write([]byte(`{"created_at":1}`)))

		var buf bytes.Buffer
		describeStore(&buf, store)
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, store.Location(), lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "written "), lines[1])
	})

	t.Run("empty sqlite store prints only the location", func(t *testing.T) {
		store := sqlite.NewSnapshotStore(filepath.Join(dir, "empty.db"))

		var buf bytes.Buffer
		describeStore(&buf, store)
		assert.Equal(t, store.Location()+"\n", buf.String())
	})

	t.Run("file store prints only the location", func(t *testing.T) {
		store := filesystem.NewSnapshotStore(filepath.Join(dir, "cache.json"))

		var buf bytes.Buffer
		describeStore(&buf, store)
		assert.Equal(t, store.Location()+"\n", buf.String())
	})
}

func TestWriteEntries(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeEntries(&buf, sampleEntries(), "text"))
		assert.Equal(t,
			"[group] platform  https://gitlab.example.com/platform\n"+
				"  [project] api  https://gitlab.example.com/platform/api\n",
			buf.String())
	})

	t.Run("empty text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeEntries(&buf, nil, ""))
		assert.Equal(t, "No groups or projects\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeEntries(&buf, sampleEntries(), "JSON"))

		var got []commands.Entry
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "platform/api", got[0].Children[0].Path)
		assert.NotContains(t, buf.String(), "last_activity")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeEntries(&buf, sampleEntries(), "yaml"))
		assert.True(t, strings.HasPrefix(buf.String(), "- name: platform\n"), buf.String())

		var got []commands.Entry
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "Project", got[0].Children[0].Kind)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := writeEntries(&bytes.Buffer{}, sampleEntries(), "xml")
		assert.EqualError(t, err, `unknown format "xml" (want text, json or yaml)`)
	})
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"dump", "search", "details", "cache", "mcp"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
	assert.Equal(t, "true", cachePathCmd.Annotations[annotationNoToken])
	assert.Equal(t, "true", cacheClearCmd.Annotations[annotationNoToken])
	assert.Empty(t, dumpCmd.Annotations[annotationNoToken])
}
