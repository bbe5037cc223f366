package logging

import (
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
)

// LoggingWrapper turns a handler into an http.HandlerFunc that emits one
// structured entry per request. A fresh LogData is created per request,
// tagged with a request id, and attached to the request context.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)

		requestID, err := uuid.NewV4()
		if err == nil {
			logData.AddData("requestID", requestID.String())
		}
		logData.AddData("method", req.Method)
		logData.AddData("path", req.URL.Path)

		if log.IsLevelEnabled(logrus.DebugLevel) {
			log.Debugf("Handler.%v.Request headers: %v", loggingName, spew.Sdump(req.Header))
		}

		req = req.WithContext(WithLogData(req.Context(), logData))

		log.Infof("Handler.%v.Start", loggingName)

		endTimer := logData.AddTiming("duration")
		err = handler(w, req, logData)
		endTimer()
		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}
