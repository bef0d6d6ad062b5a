package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrInvalidConfig       = errors.New("invalid configuration")

	ErrInvalidColor        = errors.New("invalid color")
	ErrInvalidRulePattern  = errors.New("invalid rule pattern")
	ErrInvalidMaxLines     = errors.New("view max_lines must not be negative")
	ErrInvalidRemotePath   = errors.New("remote path must start with '/'")
	ErrRemotePathReserved  = errors.New("remote path '/metrics' is reserved")
	ErrInvalidMonitorRate  = errors.New("monitor interval must be positive")
	ErrRemoteAddressNeeded = errors.New("remote address is required")

	ErrFailedToReadPlan   = errors.New("failed to read plan file")
	ErrFailedToParsePlan  = errors.New("failed to parse plan file")
	ErrPlanHasNoSteps     = errors.New("plan has no steps")
	ErrStepNameRequired   = errors.New("step name is required")
	ErrStepCommandMissing = errors.New("step command is required")
	ErrInvalidStepTimeout = errors.New("invalid step timeout")
	ErrStepFailed         = errors.New("step failed")
	ErrStepTimedOut       = errors.New("step timed out")
	ErrPlanAborted        = errors.New("plan aborted")
	ErrPlanAlreadyRunning = errors.New("plan already running")
	ErrPlanFailed         = errors.New("plan failed")

	ErrFailedToOpenFile     = errors.New("failed to open file")
	ErrFailedToWatchFile    = errors.New("failed to watch file")
	ErrFailedToListen       = errors.New("failed to listen")
	ErrFailedToDial         = errors.New("failed to dial remote")
	ErrFailedToBuildPayload = errors.New("failed to build payload")
	ErrInvalidPayload       = errors.New("invalid payload")

	ErrFailedToStartCommand = errors.New("failed to start command")
	ErrFailedToCreatePipe   = errors.New("failed to create pipe")
	ErrFileAlreadyExists    = errors.New("file already exists, use --force to overwrite")
	ErrTextRequired         = errors.New("text is required unless --clear is set")
)

var (
	As  = errors.As
	Is  = errors.Is
	New = errors.New
)
