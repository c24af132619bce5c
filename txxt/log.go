package txxt

import "go.uber.org/zap"

// Log is the package-level logger every pipeline stage writes diagnostics
// through. It defaults to a no-op sink: callers who never call SetLogger
// pay nothing for it. Nothing in the pipeline branches on whether logging
// is enabled.
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// SetLogger replaces the package-level logger. Passing nil restores the
// no-op default.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		Log = zap.NewNop().Sugar()
		return
	}
	Log = l
}
