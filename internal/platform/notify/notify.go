package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"cvp/internal/platform/apiclient"
	"cvp/internal/platform/logging"
)

type Level int

const (
	// Silent notices are logged only: background polls, route decoding.
	Silent Level = iota
	// Banner notices show in the status line without interrupting.
	Banner
	// Alert notices block until the user dismisses them.
	Alert
)

func (l Level) String() string {
	switch l {
	case Banner:
		return "banner"
	case Alert:
		return "alert"
	default:
		return "silent"
	}
}

type Notice struct {
	Level   Level
	Message string
	Err     error
}

type Notifier interface {
	Notify(n Notice)
}

// ActionFailed is the notice for a failed user initiated action such as
// login, a review decision or a user creation.
func ActionFailed(action string, err error) Notice {
	return Notice{Level: Alert, Message: fmt.Sprintf("%s failed: %s", action, apiclient.Message(err)), Err: err}
}

// BackgroundFailed is the notice for failures the user did not trigger.
func BackgroundFailed(source string, err error) Notice {
	return Notice{Level: Silent, Message: source + " failed", Err: err}
}

func Info(message string) Notice {
	return Notice{Level: Banner, Message: message}
}

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) LogNotifier {
	return LogNotifier{logger: logging.OrDiscard(logger)}
}

func (n LogNotifier) Notify(notice Notice) {
	attrs := []any{"level", notice.Level.String()}
	if notice.Err != nil {
		attrs = append(attrs, "err", notice.Err)
	}
	if notice.Err != nil || notice.Level == Silent {
		n.logger.Warn(notice.Message, attrs...)
		return
	}
	n.logger.Info(notice.Message, attrs...)
}

// WriterNotifier prints banners and alerts to w and logs everything.
type WriterNotifier struct {
	mu  sync.Mutex
	w   io.Writer
	log LogNotifier
}

func NewWriterNotifier(w io.Writer, logger *slog.Logger) *WriterNotifier {
	return &WriterNotifier{w: w, log: NewLogNotifier(logger)}
}

func (n *WriterNotifier) Notify(notice Notice) {
	n.log.Notify(notice)
	if notice.Level == Silent {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	prefix := ""
	if notice.Level == Alert {
		prefix = "error: "
	}
	fmt.Fprintln(n.w, prefix+notice.Message)
}

// Recorder keeps notices in memory. The TUI drains it into its modal and status bar.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(notice Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}
