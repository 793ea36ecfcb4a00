package ipclog

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/atomic"
)

// Severity orders records by urgency. FILE and VERBOSE share one route.
type Severity int

const (
	SeverityFile Severity = iota
	SeverityVerbose
	SeverityDebug
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityFile:
		return "FILE"
	case SeverityVerbose:
		return "VERBOSE"
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Tag is the bracketed prefix used when rendering a record.
func (s Severity) Tag() string {
	if s == SeverityVerbose {
		return SeverityFile.String()
	}
	return s.String()
}

// Valid reports whether s is one of the defined severities.
func (s Severity) Valid() bool {
	return s >= SeverityFile && s <= SeverityError
}

// ParseSeverity accepts the names returned by String, case-insensitively,
// plus the short forms "warn" and "err".
func ParseSeverity(name string) (Severity, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "FILE":
		return SeverityFile, true
	case "VERBOSE":
		return SeverityVerbose, true
	case "DEBUG":
		return SeverityDebug, true
	case "INFO":
		return SeverityInfo, true
	case "WARNING", "WARN":
		return SeverityWarning, true
	case "ERROR", "ERR":
		return SeverityError, true
	default:
		return SeverityInfo, false
	}
}

// Verbosity is the process-wide detail level read from the environment.
type Verbosity int32

const (
	VerbosityOff       Verbosity = 0
	VerbosityTimestamp Verbosity = 2
	VerbosityDebug     Verbosity = 3 // info plus debug records
	VerbosityDump      Verbosity = 4
)

const unresolvedVerbosity int32 = -1

// LevelResolver resolves the verbosity once and caches it for the life of
// the resolver. Changes to the environment after the first Resolve are
// ignored.
type LevelResolver struct {
	envVar  string
	envFile string
	cached  *atomic.Int32
}

// NewLevelResolver reads envVar from the process environment. When the
// variable is unset and envFile is not empty, the dotenv file is consulted.
func NewLevelResolver(envVar, envFile string) *LevelResolver {
	if envVar == emptyString {
		envVar = DefaultEnvVar
	}
	return &LevelResolver{
		envVar:  envVar,
		envFile: envFile,
		cached:  atomic.NewInt32(unresolvedVerbosity),
	}
}

// Resolve returns the cached verbosity, resolving it on first use.
// Concurrent first callers may each resolve; they store the same value.
func (r *LevelResolver) Resolve() Verbosity {
	if r == nil {
		return VerbosityOff
	}
	if v := r.cached.Load(); v != unresolvedVerbosity {
		return Verbosity(v)
	}
	v := parseVerbosity(r.lookup())
	r.cached.CompareAndSwap(unresolvedVerbosity, int32(v))
	return Verbosity(r.cached.Load())
}

func (r *LevelResolver) lookup() string {
	if val, ok := os.LookupEnv(r.envVar); ok {
		return val
	}
	if r.envFile == emptyString {
		return emptyString
	}
	vals, err := godotenv.Read(r.envFile)
	if err != nil {
		return emptyString
	}
	return vals[r.envVar]
}

// parseVerbosity maps anything that is not a positive integer to VerbosityOff.
func parseVerbosity(raw string) Verbosity {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil || n <= 0 {
		return VerbosityOff
	}
	return Verbosity(n)
}
