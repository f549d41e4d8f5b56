package logging

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/sirupsen/logrus"
)

// LoggingWrapper adapts a handler that reports its error to a plain
// http.HandlerFunc. Each request gets its own LogData.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := GetLogData(req.Context())
		if logData == nil {
			logData = NewLogData(log)
			req = req.WithContext(WithLogData(req.Context(), logData))
		}
		log.Debugf("Handler.%v.Start", loggingName)

		endTimer := logData.AddTiming("handlerDuration")
		err := handler(w, req, logData)
		endTimer()
		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}

// Middleware logs one line per request with status, size and latency.
func Middleware(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logData := NewLogData(log)
			logData.AddData("method", req.Method)
			logData.AddData("path", req.URL.Path)

			m := httpsnoop.CaptureMetrics(next, w, req.WithContext(WithLogData(req.Context(), logData)))

			entry := logData.Log().WithFields(logrus.Fields{
				"status":   m.Code,
				"bytes":    m.Written,
				"duration": m.Duration.Milliseconds(),
			})
			if m.Code >= http.StatusInternalServerError {
				entry.Warn("Request.Complete")
				return
			}
			entry.Info("Request.Complete")
		})
	}
}
