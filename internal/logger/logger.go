package logger

import (
	"go.uber.org/zap"
)

// New builds the process-wide zap logger. Development mode uses the
// human-readable console encoder.
func New(ginMode string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if ginMode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return l
}
