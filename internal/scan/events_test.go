package scan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pedro-visualizer/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docA = `{
  "startPoint": {"x": 0, "y": 0, "heading": "constant", "degrees": 0},
  "lines": [
    {"id": "l1", "endPoint": {"x": 10, "y": 0, "heading": "constant", "degrees": 0},
     "controlPoints": [], "color": "#fff",
     "eventMarkers": [{"id": "e1", "name": "intake", "position": 0.5}]}
  ],
  "shapes": [],
  "sequence": [
    {"kind": "path", "lineId": "l1"},
    {"kind": "wait", "id": "w1", "name": "pause", "durationMs": 100,
     "eventMarkers": [{"id": "e2", "name": "  score  ", "position": 0}]}
  ]
}`

const docB = `{
  "startPoint": {"x": 0, "y": 0},
  "lines": [
    {"id": "l1", "endPoint": {"x": 5, "y": 5}, "controlPoints": [], "color": "#000",
     "eventMarkers": [{"id": "e1", "name": "intake", "position": 0.1},
                      {"id": "e2", "name": "", "position": 0.2}]}
  ],
  "sequence": [
    {"kind": "rotate", "id": "r1", "degrees": 90,
     "eventMarkers": [{"id": "e3", "name": "aim", "position": 1}]}
  ]
}`

func TestEventNames(t *testing.T) {
	t.Run("union sorted and deduplicated", func(t *testing.T) {
		fs := testutil.NewMockFileSystem()
		fs.AddFile("/paths/a.pp", docA)
		fs.AddFile("/paths/b.pp", docB)
		fs.AddFile("/paths/notes.txt", "ignored")

		res, err := EventNames(context.Background(), fs, "/paths", 2)
		require.NoError(t, err)

		assert.Equal(t, []string{"aim", "intake", "score"}, res.EventNames)
		assert.Equal(t, 2, res.FilesRead)
		assert.Empty(t, res.Skipped)
		assert.Equal(t, "/paths", res.Directory)
	})

	t.Run("malformed and unreadable files are skipped", func(t *testing.T) {
		fs := testutil.NewMockFileSystem()
		fs.AddFile("/paths/a.pp", docA)
		fs.AddFile("/paths/broken.pp", `{"lines": [`)
		fs.FailRead("/paths/locked.pp", errors.New("permission denied"))

		res, err := EventNames(context.Background(), fs, "/paths", 0)
		require.NoError(t, err)

		assert.Equal(t, []string{"intake", "score"}, res.EventNames)
		assert.Equal(t, 1, res.FilesRead)
		require.Len(t, res.Skipped, 2)
		assert.Equal(t, "/paths/broken.pp", res.Skipped[0].Path)
		assert.Contains(t, res.Skipped[0].Reason, "parsing")
		assert.Equal(t, "/paths/locked.pp", res.Skipped[1].Path)
		assert.Contains(t, res.Skipped[1].Reason, "permission denied")
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		fs := testutil.NewMockFileSystem()
		_, err := EventNames(context.Background(), fs, "/nowhere", 1)
		assert.Error(t, err)
	})

	t.Run("reads are bounded", func(t *testing.T) {
		fs := testutil.NewMockFileSystem()
		fs.Delay = 5 * time.Millisecond
		for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
			fs.AddFile("/paths/"+name+".pp", docB)
		}

		res, err := EventNames(context.Background(), fs, "/paths", 2)
		require.NoError(t, err)
		assert.Equal(t, 6, res.FilesRead)
		assert.LessOrEqual(t, fs.MaxConcurrentReads(), 2)
	})

	t.Run("cancelled context", func(t *testing.T) {
		fs := testutil.NewMockFileSystem()
		fs.AddFile("/paths/a.pp", docA)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := EventNames(ctx, fs, "/paths", 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
