package ipclog

import (
	"fmt"

	"go.uber.org/atomic"
)

type sinkID int

const (
	sinkStdout sinkID = iota
	sinkStderr
	sinkFile
	sinkFacility
	sinkCount
)

// routes is the fixed severity to sink table. DEBUG is additionally gated on
// the verbosity in Emit.
var routes = [...][]sinkID{
	SeverityFile:    {sinkFile, sinkStdout, sinkFacility},
	SeverityVerbose: {sinkFile, sinkStdout, sinkFacility},
	SeverityDebug:   {sinkStdout, sinkFacility},
	SeverityInfo:    {sinkStdout, sinkFacility},
	SeverityWarning: {sinkStdout, sinkFacility},
	SeverityError:   {sinkStderr, sinkFacility},
}

// sinkCounters are per-sink delivery counts.
type sinkCounters struct {
	writes    atomic.Uint64
	failures  atomic.Uint64
	lastError atomic.String
}

// SinkStats reports deliveries to one sink since the dispatcher was built.
type SinkStats struct {
	Name      string
	Writes    uint64
	Failures  uint64
	LastError string
}

// Dispatcher writes rendered records to the sinks routed for their severity.
// It never reports failures to its caller.
type Dispatcher struct {
	resolver *LevelResolver
	sinks    [sinkCount]Sink
	counters [sinkCount]sinkCounters
}

// NewDispatcher wires the four sinks. A nil sink is skipped.
func NewDispatcher(resolver *LevelResolver, stdout, stderr, file, facility Sink) *Dispatcher {
	d := &Dispatcher{resolver: resolver}
	d.sinks[sinkStdout] = stdout
	d.sinks[sinkStderr] = stderr
	d.sinks[sinkFile] = file
	d.sinks[sinkFacility] = facility
	return d
}

// Enabled reports whether Emit would deliver a record of this severity.
func (d *Dispatcher) Enabled(sev Severity) bool {
	if d == nil || !sev.Valid() {
		return false
	}
	if sev == SeverityDebug {
		return d.resolver.Resolve() == VerbosityDebug
	}
	return true
}

// Emit delivers text to every sink routed for sev. A failing sink does not
// stop delivery to the others.
func (d *Dispatcher) Emit(sev Severity, text string) {
	if !d.Enabled(sev) {
		return
	}
	d.deliver(sev, text)
}

// emitSummary delivers a WARNING regardless of any gating so that suppressed
// counts are never hidden.
func (d *Dispatcher) emitSummary(text string) {
	if d == nil {
		return
	}
	d.deliver(SeverityWarning, text)
}

func (d *Dispatcher) deliver(sev Severity, text string) {
	for _, id := range routes[sev] {
		d.write(id, sev, text)
	}
}

func (d *Dispatcher) write(id sinkID, sev Severity, text string) {
	sink := d.sinks[id]
	if sink == nil {
		return
	}
	c := &d.counters[id]
	defer func() {
		if r := recover(); r != nil {
			c.failures.Inc()
			c.lastError.Store(fmt.Sprintf("panic: %v", r))
		}
	}()
	if err := sink.Write(sev, text); err != nil {
		c.failures.Inc()
		c.lastError.Store(joinChain(errorChain(err)))
		return
	}
	c.writes.Inc()
}

// Stats returns the counters of every configured sink.
func (d *Dispatcher) Stats() []SinkStats {
	if d == nil {
		return nil
	}
	var out []SinkStats
	for id, sink := range d.sinks {
		if sink == nil {
			continue
		}
		c := &d.counters[id]
		out = append(out, SinkStats{
			Name:      sink.Name(),
			Writes:    c.writes.Load(),
			Failures:  c.failures.Load(),
			LastError: c.lastError.Load(),
		})
	}
	return out
}
