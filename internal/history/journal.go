package history

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Journal is a durable append-only record of scored products, kept next
// to the in-memory repository for audit and offline analysis.
type Journal interface {
	Append(e Entry)
	Close()
}

// NoopJournal is used when no journal file is configured.
type NoopJournal struct{}

func (NoopJournal) Append(Entry) {}
func (NoopJournal) Close()       {}

// journalHandler is a slog handler that writes one JSON object per
// record (JSONL), with a plain timestamp and no level field; all
// attributes land at the top level of the object.
type journalHandler struct {
	out io.Writer
}

// Handle serializes a record as a single JSONL line.
func (h *journalHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	attrs["time"] = r.Time.Format(time.DateTime)

	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "" && a.Value.Any() != nil {
			attrs[a.Key] = a.Value.Any()
		}
		return true
	})

	data, err := json.Marshal(attrs)
	if err != nil {
		return err
	}

	_, err = h.out.Write(append(data, '\n'))
	return err
}

// WithAttrs is not supported
func (h *journalHandler) WithAttrs([]slog.Attr) slog.Handler {
	panic("WithAttrs is not supported by journalHandler")
}

// WithGroup is not supported
func (h *journalHandler) WithGroup(string) slog.Handler {
	panic("WithGroup is not supported by journalHandler")
}

// Enabled always reports true; the journal has no level filtering.
func (h *journalHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// JsonJournal writes each history entry to a JSON-lines file with
// rotation and compression via lumberjack. Thread-safe.
type JsonJournal struct {
	lumberjack *lumberjack.Logger
	logger     *slog.Logger
}

// NewJsonJournal creates a journal writing to file.
// Parameters:
//   - file: path of the journal file
//   - maxSize: maximum file size in MB before rotation
//   - maxBackups: number of rotated files to keep
func NewJsonJournal(file string, maxSize, maxBackups int) *JsonJournal {
	j := JsonJournal{}
	j.lumberjack = &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   true,
	}
	j.logger = slog.New(&journalHandler{out: j.lumberjack})
	return &j
}

// Append writes one entry as a JSONL record.
func (j *JsonJournal) Append(e Entry) {
	j.logger.Info("", "entry", e)
}

// Close flushes and closes the underlying file. Call on shutdown so the
// last file is complete.
func (j *JsonJournal) Close() {
	j.lumberjack.Close()
}
