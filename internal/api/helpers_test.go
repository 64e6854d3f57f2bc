package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/stretchr/testify/require"
)

// samplePath is a 10 unit straight line inside the field.
const samplePath = `{
  "startPoint": {"x": 20, "y": 20, "heading": "constant", "degrees": 0},
  "lines": [
    {"id": "l1", "endPoint": {"x": 30, "y": 20, "heading": "constant", "degrees": 0},
     "controlPoints": [], "color": "#ff0000", "waitAfter": true, "waitAfterMs": 1000,
     "eventMarkers": [{"id": "e1", "name": "intake", "position": 0.25}]}
  ],
  "shapes": [],
  "sequence": [{"kind": "path", "lineId": "l1"}]
}`

// testSettings reproduces the reference kinematics: vmax 10, a=b=5, pi/2 rad/s.
const testSettings = `{"maxVelocity": 10, "maxAcceleration": 5, "maxDeceleration": 5, "aVelocity": 1.5707963267948966, "rWidth": 16, "rHeight": 16, "safetyMargin": 1}`

type call struct {
	method  string
	target  string
	body    string
	headers map[string]string
	params  map[string]string
}

// perform runs h against a recorded request, passing any returned error
// through ErrorHandler the way the server does.
func perform(t *testing.T, h echo.HandlerFunc, in call) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(in.method, in.target, strings.NewReader(in.body))
	if in.body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range in.headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(in.params) > 0 {
		var names, values []string
		for k, v := range in.params {
			names = append(names, k)
			values = append(values, v)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	if err := h(c); err != nil {
		ErrorHandler(err, c)
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[APIError](t, rec).Code
}

type fixedSettings models.Settings

func (f fixedSettings) Current() models.Settings { return models.Settings(f) }

func parseSettings(t *testing.T, js string) models.Settings {
	t.Helper()
	var s models.Settings
	require.NoError(t, json.Unmarshal([]byte(js), &s))
	return s
}
