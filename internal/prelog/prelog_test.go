package prelog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Logger_DebugfGatedByVerbose(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	l := New(&buf, false)
	l.Debugf("hidden %d", 1)
	assert.Empty(buf.String())

	buf.Reset()
	l = New(&buf, true)
	l.Debugf("shown %d", 1)
	assert.Contains(buf.String(), "DEBUG shown 1")
}

func Test_Logger_InfofAlwaysLogs(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	l := New(&buf, false)
	l.Infof("state=%s", "ready")

	assert.Contains(buf.String(), "INFO  state=ready")
}

func Test_Logger_WarnfAlwaysLogs(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	l := New(&buf, false)
	l.Warnf("automaton for %q is cyclic", "A*")

	assert.Contains(buf.String(), "WARN  automaton for \"A*\" is cyclic")
}

func Test_Logger_ErrorfAlwaysLogs(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	l := New(&buf, false)
	l.Errorf("boom")

	assert.Contains(buf.String(), "ERROR boom")
}

func Test_Logger_NilLoggerIsNoOp(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Debugf("x")
		l.Infof("x")
		l.Warnf("x")
		l.Errorf("x")
	})
}
