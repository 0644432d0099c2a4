package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"vtex-storefront/internal/config"
)

type LoggerService interface {
	Log(value string)
	LogError(value string, err error)
	LogWarning(value string)
	LogSuccess(value string)
}

// Notifier receives the messages worth a human's attention.
type Notifier interface {
	Notify(level, value string) error
}

// notifyBacklog bounds the notifications waiting for delivery. Past it new
// ones are dropped with a warning.
const notifyBacklog = 64

type Logger struct {
	log   zerolog.Logger
	queue *notifyQueue
}

type notification struct {
	level string
	value string
}

// notifyQueue delivers notifications one at a time off the caller's
// goroutine.
type notifyQueue struct {
	notifier Notifier
	log      zerolog.Logger

	mu      sync.Mutex
	closed  bool
	pending chan notification
	done    chan struct{}
}

// NewLogger builds the process logger. Call Close before exiting so queued
// notifications go out.
func NewLogger(cfg config.LogConfig, telegram config.TelegramBotConfig) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	logger := New(out, cfg.Level)
	if n := NewTelegramNotifier(telegram); n != nil {
		logger = logger.WithNotifier(n)
	}
	return logger
}

// New builds a Logger writing JSON lines to out. Unknown levels fall back
// to info.
func New(out io.Writer, level string) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return &Logger{
		log: zerolog.New(out).Level(lvl).With().Timestamp().Logger(),
	}
}

// WithNotifier returns a Logger that also hands errors and successes to n.
// Delivery runs on a background goroutine until Close.
func (l *Logger) WithNotifier(n Notifier) *Logger {
	if l == nil {
		return nil
	}
	q := &notifyQueue{
		notifier: n,
		log:      l.log,
		pending:  make(chan notification, notifyBacklog),
		done:     make(chan struct{}),
	}
	go q.run()
	return &Logger{log: l.log, queue: q}
}

// Close delivers the queued notifications and stops the notifier. Later
// notifications are dropped; logging itself keeps working.
func (l *Logger) Close() {
	if l == nil || l.queue == nil {
		return
	}
	l.queue.close()
}

func (l *Logger) Log(value string) {
	if l == nil {
		return
	}
	l.log.Info().Msg(formatMessage(value))
}

func (l *Logger) LogError(value string, err error) {
	if l == nil {
		return
	}
	l.log.Error().Err(err).Msg(formatMessage(value))
	if err != nil {
		l.notify("ERROR", value+": "+err.Error())
		return
	}
	l.notify("ERROR", value)
}

func (l *Logger) LogWarning(value string) {
	if l == nil {
		return
	}
	l.log.Warn().Msg(formatMessage(value))
}

func (l *Logger) LogSuccess(value string) {
	if l == nil {
		return
	}
	l.log.Info().Bool("success", true).Msg(formatMessage(value))
	l.notify("SUCCESS", value)
}

func (l *Logger) notify(level, value string) {
	if l.queue == nil {
		return
	}
	l.queue.push(notification{level: level, value: value})
}

func (q *notifyQueue) push(n notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	select {
	case q.pending <- n:
	default:
		q.log.Warn().Str("level", n.level).Msg("notifier backlog full, dropping")
	}
}

func (q *notifyQueue) run() {
	defer close(q.done)
	for n := range q.pending {
		if err := q.notifier.Notify(n.level, n.value); err != nil {
			q.log.Warn().Err(err).Str("level", n.level).Msg("notifier failed")
		}
	}
}

func (q *notifyQueue) close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.pending)
	}
	q.mu.Unlock()
	<-q.done
}

func formatMessage(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		v = "-"
	}
	return v
}
