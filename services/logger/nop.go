package logsvc

import "github.com/trezcool/estudos/core"

type nopLogger struct{}

// NewNopLogger returns a core.Logger that discards everything.
func NewNopLogger() core.Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
