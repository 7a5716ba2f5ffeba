package testutil

import (
	"sync"

	"rider-dispatch/internal/logx"
)

// Entry is a single captured log record.
type Entry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// Recorder captures log entries for assertions in tests. Safe for
// concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// New creates a Recorder.
func New() *Recorder { return &Recorder{} }

// Logger returns a logx.Logger that records into the Recorder.
func (r *Recorder) Logger() logx.Logger { return recLogger{r: r} }

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// HasMsg reports whether any recorded entry carries the message.
func (r *Recorder) HasMsg(msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Msg == msg {
			return true
		}
	}
	return false
}

func (r *Recorder) append(level, msg string, fields []logx.Field) {
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: fields})
	r.mu.Unlock()
}

type recLogger struct {
	r      *Recorder
	fields []logx.Field
}

func (l recLogger) Debug(msg string, fields ...logx.Field) { l.log("debug", msg, fields) }
func (l recLogger) Info(msg string, fields ...logx.Field)  { l.log("info", msg, fields) }
func (l recLogger) Warn(msg string, fields ...logx.Field)  { l.log("warn", msg, fields) }
func (l recLogger) Error(msg string, fields ...logx.Field) { l.log("error", msg, fields) }

func (l recLogger) With(fields ...logx.Field) logx.Logger {
	nf := make([]logx.Field, 0, len(l.fields)+len(fields))
	nf = append(nf, l.fields...)
	nf = append(nf, fields...)
	return recLogger{r: l.r, fields: nf}
}

func (l recLogger) Sync() error { return nil }

func (l recLogger) log(level, msg string, fields []logx.Field) {
	all := make([]logx.Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, fields...)
	l.r.append(level, msg, all)
}
