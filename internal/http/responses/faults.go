package responses

import (
	"net/http"

	domcommon "usersvc/internal/domain/common"
	"usersvc/internal/logging"
)

// FaultWriter is the single point where an operation fault becomes a
// client-visible response. Classified faults map to fixed statuses and
// messages; anything else is a 500, with the raw error text exposed only
// in debug mode.
type FaultWriter struct {
	debug  bool
	logger logging.Logger
}

func NewFaultWriter(debug bool, logger logging.Logger) *FaultWriter {
	return &FaultWriter{
		debug:  debug,
		logger: logger.With("component", "fault_writer"),
	}
}

func (f *FaultWriter) Write(w http.ResponseWriter, err error) {
	switch {
	case domcommon.IsConflict(err):
		WriteError(w, http.StatusBadRequest, "Email already registered", nil)
	case domcommon.IsNotFound(err):
		WriteError(w, http.StatusNotFound, "User not found", nil)
	default:
		f.logger.Error("unhandled fault", "error", err)
		msg := "Internal Server Error"
		if f.debug {
			msg = err.Error()
		}
		WriteError(w, http.StatusInternalServerError, msg, nil)
	}
}
