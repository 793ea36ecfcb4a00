package ipclog

import "time"

const (
	// DefaultEnvVar selects the process-wide verbosity.
	DefaultEnvVar = "IPCF_HAL_DEBUG_LEVEL"
	// DefaultFilePath is the append-only target of FILE and VERBOSE records.
	DefaultFilePath = "/userdata/ipcf_hal_log"
	// DefaultTag identifies this subsystem in the system log.
	DefaultTag = "IPCF_HAL"

	DefaultRateLimitInterval = 10 * time.Second
	DefaultRateLimitBurst    = 5

	emptyString = ""
)

const (
	// hexRowWidth is the number of bytes rendered per hex dump row.
	hexRowWidth = 32

	// frames between a Service method's caller and runtime.Caller in callerFrame
	methodCallerDepth = 3
)

const (
	errMsgNilConfig     = "Logging config is nil."
	errMsgNilService    = "Logger service is nil."
	errMsgConfigInvalid = "Logging configuration is invalid."
	errMsgConfigRead    = "Logging configuration file could not be read."
	errMsgConfigDecode  = "Logging configuration file could not be decoded."
	errMsgConfigFormat  = "Logging configuration file format is not supported."
	errMsgFileOpen      = "Log file could not be opened."
	errMsgFileWrite     = "Log file could not be written."
)
