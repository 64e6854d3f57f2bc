package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/pedro-visualizer/backend/internal/scan"
	"github.com/pedro-visualizer/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventHandler() EventHandler {
	fs := testutil.NewMockFileSystem()
	fs.AddFile("/data/paths/a.pp", samplePath)
	fs.AddFile("/data/paths/broken.pp", "{")
	fs.AddFile("/data/outside/c.pp", `{"startPoint": {"x": 0, "y": 0}, "sequence": [{"kind": "wait", "id": "w", "name": "w", "durationMs": 1, "eventMarkers": [{"id": "m", "name": "escape", "position": 0}]}]}`)
	fs.AddFile("/data/paths/other/b.pp", `{"startPoint": {"x": 0, "y": 0}, "sequence": [{"kind": "wait", "id": "w", "name": "w", "durationMs": 1, "eventMarkers": [{"id": "m", "name": "shoot", "position": 0}]}]}`)
	return NewEventHandler(scan.NewManager(fs, 2), "/data/paths")
}

func TestEventHandler_HandleScanEvents(t *testing.T) {
	h := newEventHandler()

	t.Run("default directory", func(t *testing.T) {
		rec := perform(t, h.HandleScanEvents, call{method: http.MethodGet, target: "/api/events"})
		require.Equal(t, http.StatusOK, rec.Code)

		res := decode[scan.Result](t, rec)
		assert.Equal(t, []string{"intake"}, res.EventNames)
		assert.Equal(t, 1, res.FilesRead)
		assert.Len(t, res.Skipped, 1)
	})

	t.Run("explicit directory", func(t *testing.T) {
		rec := perform(t, h.HandleScanEvents, call{method: http.MethodGet, target: "/api/events?dir=other"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"shoot"}, decode[scan.Result](t, rec).EventNames)
	})

	t.Run("directory stays inside paths root", func(t *testing.T) {
		for _, dir := range []string{"../outside", "/data/outside", "../../etc"} {
			rec := perform(t, h.HandleScanEvents, call{method: http.MethodGet, target: "/api/events?dir=" + dir})
			assert.Equal(t, http.StatusBadRequest, rec.Code, dir)
			assert.NotContains(t, rec.Body.String(), "escape", dir)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		rec := perform(t, h.HandleScanEvents, call{method: http.MethodGet, target: "/api/events?dir=/nowhere"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEventHandler_Jobs(t *testing.T) {
	h := newEventHandler()

	rec := perform(t, h.HandleStartScan, call{method: http.MethodPost, target: "/api/events/scan", body: `{"dir": "other"}`})
	require.Equal(t, http.StatusAccepted, rec.Code)
	job := decode[scan.Job](t, rec)
	require.NotEmpty(t, job.ID)

	var status scan.Job
	require.Eventually(t, func() bool {
		rec := perform(t, h.HandleScanStatus, call{method: http.MethodGet, target: "/api/events/scan/" + job.ID, params: map[string]string{"jobId": job.ID}})
		if rec.Code != http.StatusOK {
			return false
		}
		status = decode[scan.Job](t, rec)
		return status.Status != scan.StatusScanning
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, scan.StatusComplete, status.Status)
	require.NotNil(t, status.Result)
	assert.Equal(t, []string{"shoot"}, status.Result.EventNames)

	rec = perform(t, h.HandleScanStatus, call{method: http.MethodGet, target: "/api/events/scan/unknown", params: map[string]string{"jobId": "unknown"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfinePath(t *testing.T) {
	cases := map[string]string{
		"":              "/data/paths",
		"other":         "/data/paths/other",
		"/data/outside": "/data/paths/data/outside",
		"../../etc":     "/data/paths/etc",
		"a/../../b":     "/data/paths/b",
	}
	for in, want := range cases {
		assert.Equal(t, want, confinePath("/data/paths", in), in)
	}
}
