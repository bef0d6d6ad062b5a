package config

import "time"

// app constants
const (
	AppName        = "tlog"
	AppDescription = "A terminal viewer for test logs"
	Version        = "0.3.0"
	FileName       = "tlog.yaml"
	EnvFile        = ".env"
	EnvPrefix      = "TLOG"
	DefaultDSN     = ""
)

// logging constants
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// view constants
const (
	DefaultMaxLines   = 0
	DefaultTailLines  = 200
	DefaultPadding    = 1
	DefaultViewWidth  = 80
	DefaultViewHeight = 20
)

// remote constants
const (
	DefaultRemoteAddress = "127.0.0.1:7777"
	DefaultRemotePath    = "/lines"
	MetricsPath          = "/metrics"
	RemoteReadLimit      = 64 * 1024
	RemoteShutdown       = 3 * time.Second
	SendTimeout          = 5 * time.Second
)

// plan constants
const (
	DefaultPlanFile    = "plan.toml"
	DefaultStepTimeout = 5 * time.Minute
	StepStopTimeout    = 3 * time.Second
)

// monitor constants
const (
	DefaultMonitorInterval = time.Second
)

// report constants
const (
	DefaultEnvironment = "development"
	ReportFlushTimeout = 2 * time.Second
)
