package misc

import "github.com/BrugadaSyndrome/bslogger"

const (
	Fatal Severity = iota
	Error
	Warning
	Info
)

// Severity selects the log level CheckError reports an error at. Fatal
// terminates the process.
type Severity int

func (s Severity) String() string {
	return []string{"Fatal", "Error", "Warning", "Info"}[s]
}

// CheckError logs err at the given severity if it is non-nil. It keeps the
// settings-loading and shutdown paths free of repeated if-err blocks where
// the only response is to log.
func CheckError(err error, logger bslogger.Logger, severity Severity) {
	if err == nil {
		return
	}
	switch severity {
	case Error:
		logger.Error(err.Error())
	case Warning:
		logger.Warning(err.Error())
	case Info:
		logger.Info(err.Error())
	default:
		logger.Fatal(err.Error())
	}
}
