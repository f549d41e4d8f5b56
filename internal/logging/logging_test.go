package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		lines = append(lines, m)
	}
	return lines
}

func TestSetupLogging_Level(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, newLogger(&bytes.Buffer{}, "debug").Level)
	assert.Equal(t, logrus.InfoLevel, newLogger(&bytes.Buffer{}, "").Level)

	buf := &bytes.Buffer{}
	logger := newLogger(buf, "chatty")
	assert.Equal(t, logrus.InfoLevel, logger.Level)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warning", lines[0]["loglevel"])
}

func TestLoggingWrapper(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger(buf, "info")

	ok := LoggingWrapper("Index", logger, func(w http.ResponseWriter, _ *http.Request, l *LogData) error {
		l.AddData("rows", 1)
		w.WriteHeader(http.StatusOK)
		return nil
	})
	failing := LoggingWrapper("PredictData", logger, func(w http.ResponseWriter, _ *http.Request, _ *LogData) error {
		w.WriteHeader(http.StatusOK)
		return errors.New("missing CUSTOMER_ID")
	})

	ok(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	failing(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/predictdata", nil))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "Handler.Index.Complete", lines[0]["msg"])
	assert.Equal(t, float64(1), lines[0]["rows"])
	assert.Contains(t, lines[0], "handlerDuration")

	// -- data from the first request does not leak into the second --
	assert.Equal(t, "Handler.PredictData.Error", lines[1]["msg"])
	assert.Equal(t, "error", lines[1]["loglevel"])
	assert.Equal(t, "missing CUSTOMER_ID", lines[1]["error"])
	assert.NotContains(t, lines[1], "rows")
}

func TestMiddleware(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger(buf, "info")

	h := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		AddData(req.Context(), "modelVersion", "v1")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "Request.Complete", lines[0]["msg"])
	assert.Equal(t, "/status", lines[0]["path"])
	assert.Equal(t, float64(http.StatusTeapot), lines[0]["status"])
	assert.Equal(t, float64(5), lines[0]["bytes"])
	assert.Equal(t, "v1", lines[0]["modelVersion"])
}

func TestLogData_Timing(t *testing.T) {
	l := NewLogData(newLogger(&bytes.Buffer{}, ""))

	l.AddToExistingTiming("db")()
	l.AddToExistingTiming("db")()
	l.AddTiming("total")()

	entry := l.Log()
	assert.Contains(t, entry.Data, "db")
	assert.Contains(t, entry.Data, "total")
}
