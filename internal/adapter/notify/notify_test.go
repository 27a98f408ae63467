package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rl1809/rocketcart/internal/port"
)

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewWriterNotifier(&buf)

	n.Notify(port.SeverityError, "Requested quantity out of stock")
	n.Notify(port.SeverityWarning, "Cart could not be saved")

	assert.Equal(t, "[ERROR] Requested quantity out of stock\n[WARNING] Cart could not be saved\n", buf.String())
}

func TestLogNotifier_MapsSeverityToLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := NewLogNotifier(zap.New(core))

	n.Notify(port.SeverityError, "a")
	n.Notify(port.SeverityWarning, "b")
	n.Notify(port.Severity("notice"), "c")

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
		assert.Equal(t, "c", entries[2].Message)
	}
}

func TestFanout(t *testing.T) {
	var a, b bytes.Buffer
	Fanout{NewWriterNotifier(&a), NewWriterNotifier(&b)}.Notify(port.SeverityWarning, "saved")

	assert.Equal(t, "[WARNING] saved\n", a.String())
	assert.Equal(t, a.String(), b.String())
}
