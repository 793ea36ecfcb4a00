package ipclog

import (
	"io"
	"os"
)

// initializeSinks builds the dispatcher sinks from the service settings.
// A system log that cannot be reached leaves the facility as a no-op.
func (s *Service) initializeSinks(cfg *Config) (stdout, stderr, file, facility Sink, closer io.Closer) {
	out := s.Stdout
	if out == nil {
		out = os.Stdout
	}
	errOut := s.Stderr
	if errOut == nil {
		errOut = os.Stderr
	}

	stdout = newConsoleSink("stdout", out)
	stderr = newConsoleSink("stderr", errOut)
	file = newFileSink(cfg.FilePath)

	switch {
	case s.Facility != nil:
		facility = newFacilitySink(s.Facility)
	case cfg.Syslog:
		f, c, err := dialFacility(cfg.Tag)
		if err != nil {
			facility = newFacilitySink(nopFacility{})
			break
		}
		cf := newClosingFacility(f, c)
		facility = newFacilitySink(cf)
		closer = cf
	}

	return stdout, stderr, file, facility, closer
}
