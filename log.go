package pipes

import "go.uber.org/zap"

// NewDevelopmentLogger returns a zap.Logger configured for local
// development: human-readable, synchronous, debug level enabled. Hosts
// embedding this package for production use are expected to build
// their own zap.Logger and pass it to Client.SetLogger instead.
func NewDevelopmentLogger() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
