package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/rl1809/rocketcart/internal/port"
)

// WriterNotifier prints one line per message, e.g. for a terminal.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(severity port.Severity, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	// write errors are dropped: notifications are fire-and-forget
	_, _ = fmt.Fprintf(n.w, "[%s] %s\n", strings.ToUpper(string(severity)), message)
}

type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(severity port.Severity, message string) {
	switch severity {
	case port.SeverityError:
		n.log.Error(message, zap.String("channel", "notification"))
	case port.SeverityWarning:
		n.log.Warn(message, zap.String("channel", "notification"))
	default:
		n.log.Info(message, zap.String("channel", "notification"))
	}
}

type Fanout []port.Notifier

func (f Fanout) Notify(severity port.Severity, message string) {
	for _, n := range f {
		n.Notify(severity, message)
	}
}
