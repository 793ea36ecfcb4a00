package ipclog

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
)

// Sink is an output destination for rendered text.
type Sink interface {
	Name() string
	Write(sev Severity, text string) error
}

// consoleSink writes to a standard stream. Lines from concurrent writers may
// interleave.
type consoleSink struct {
	name string
	out  io.Writer
}

func newConsoleSink(name string, out io.Writer) *consoleSink {
	return &consoleSink{name: name, out: out}
}

func (c *consoleSink) Name() string { return c.name }

func (c *consoleSink) Write(_ Severity, text string) error {
	_, err := io.WriteString(c.out, text)
	return err
}

// fileSink appends to a fixed path, opening and closing the file on every
// write so no descriptor is held between records.
type fileSink struct {
	path string
}

func newFileSink(path string) *fileSink {
	return &fileSink{path: path}
}

func (f *fileSink) Name() string { return "file" }

func (f *fileSink) Write(_ Severity, text string) error {
	const op errors.Op = "ipclog.fileSink.Write"
	fp, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgFileOpen)
	}
	_, werr := io.WriteString(fp, text)
	cerr := fp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		return errors.New(op).Err(werr).Msg(errMsgFileWrite)
	}
	return nil
}

// Facility is a system-log-like destination with per-priority entry points.
// *syslog.Writer satisfies it.
type Facility interface {
	Err(m string) error
	Warning(m string) error
	Info(m string) error
	Debug(m string) error
}

// facilitySink routes records through a zerolog logger whose level writer
// forwards each level to the matching Facility priority as plain text.
type facilitySink struct {
	send map[zerolog.Level]func(m string) error
}

func newFacilitySink(f Facility) *facilitySink {
	return &facilitySink{
		send: map[zerolog.Level]func(string) error{
			zerolog.ErrorLevel: f.Err,
			zerolog.WarnLevel:  f.Warning,
			zerolog.InfoLevel:  f.Info,
			zerolog.DebugLevel: f.Debug,
		},
	}
}

func (f *facilitySink) Name() string { return "facility" }

// Write builds a logger per call so the error of this record cannot be
// confused with one from a concurrent writer.
func (f *facilitySink) Write(sev Severity, text string) error {
	w := &facilityWriter{send: f.send}
	l := zerolog.New(w).Level(zerolog.DebugLevel)
	l.WithLevel(facilityLevel(sev)).
		Msg(strings.TrimSuffix(text, "\n"))
	return w.err
}

// facilityLevel maps a severity to the priority it is reported at.
func facilityLevel(sev Severity) zerolog.Level {
	switch sev {
	case SeverityError:
		return zerolog.ErrorLevel
	case SeverityWarning:
		return zerolog.WarnLevel
	case SeverityDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// priorityWriter adapts one Facility method to an io.Writer for
// zerolog.ConsoleWriter.
type priorityWriter struct {
	send func(m string) error
}

func (p *priorityWriter) Write(b []byte) (int, error) {
	if err := p.send(strings.TrimSuffix(string(b), "\n")); err != nil {
		return 0, err
	}
	return len(b), nil
}

// facilityWriter is a single-use zerolog.LevelWriter. The error is kept for
// the sink to report instead of being returned, since zerolog prints failed
// writes to stderr.
type facilityWriter struct {
	send map[zerolog.Level]func(m string) error
	err  error
}

func (w *facilityWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.InfoLevel, p)
}

func (w *facilityWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	send, ok := w.send[level]
	if !ok {
		send = w.send[zerolog.InfoLevel]
	}
	out := zerolog.ConsoleWriter{
		Out:        &priorityWriter{send: send},
		NoColor:    true,
		PartsOrder: []string{zerolog.MessageFieldName},
	}
	if _, err := out.Write(p); err != nil {
		w.err = err
	}
	return len(p), nil
}

// closingFacility stops forwarding once closed. Close waits for writes that
// are already in progress, so the connection is not reopened behind it.
type closingFacility struct {
	f      Facility
	closer io.Closer

	mu     sync.RWMutex
	closed bool
}

func newClosingFacility(f Facility, closer io.Closer) *closingFacility {
	return &closingFacility{f: f, closer: closer}
}

func (c *closingFacility) forward(send func(string) error, m string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil
	}
	return send(m)
}

func (c *closingFacility) Err(m string) error     { return c.forward(c.f.Err, m) }
func (c *closingFacility) Warning(m string) error { return c.forward(c.f.Warning, m) }
func (c *closingFacility) Info(m string) error    { return c.forward(c.f.Info, m) }
func (c *closingFacility) Debug(m string) error   { return c.forward(c.f.Debug, m) }

func (c *closingFacility) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// nopFacility discards everything; used when no system log is reachable.
type nopFacility struct{}

func (nopFacility) Err(string) error     { return nil }
func (nopFacility) Warning(string) error { return nil }
func (nopFacility) Info(string) error    { return nil }
func (nopFacility) Debug(string) error   { return nil }
