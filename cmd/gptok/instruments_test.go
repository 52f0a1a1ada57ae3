package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_initTrace(t *testing.T) {
	t.Run("initialises trace file", func(t *testing.T) {
		testTraceFile := filepath.Join(t.TempDir(), "trace.out")
		stop := initTrace(testTraceFile)
		t.Cleanup(stop)
		assert.FileExists(t, testTraceFile)
	})
}

func Test_initLog(t *testing.T) {
	t.Run("creates the log file", func(t *testing.T) {
		testLogFile := filepath.Join(t.TempDir(), "test.log")
		lg, err := initLog(testLogFile, false, false)
		assert.NoError(t, err)
		assert.NotNil(t, lg)
		assert.FileExists(t, testLogFile)
	})
	t.Run("fails on an unwritable location", func(t *testing.T) {
		_, err := initLog(filepath.Join(t.TempDir(), "nonexisting", "test.log"), false, false)
		assert.Error(t, err)
	})
}
