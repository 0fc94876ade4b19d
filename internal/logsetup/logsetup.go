// Package logsetup configures logrus from the command line flags
// and environment variables shared by every loadpanel binary.
package logsetup

import (
	"flag"
	"os"

	log "github.com/sirupsen/logrus"
)

const (
	// DebugEnv enables debug logging when set to a non empty value.
	DebugEnv = "LOADPANEL_DEBUG"
	// TraceEnv enables trace logging when set to a non empty value.
	TraceEnv = "LOADPANEL_TRACE"
)

// Options holds the logging flags.
type Options struct {
	Debug bool
	Trace bool
}

// Register adds the -debug and -trace flags to fs.
func Register(fs *flag.FlagSet) *Options {
	o := &Options{}
	fs.BoolVar(&o.Debug, "debug", false, "Set logging level to debug")
	fs.BoolVar(&o.Trace, "trace", false, "Set logging level to trace. Implies debug.")
	return o
}

// Level returns the level selected by the flags and the environment.
func (o *Options) Level() log.Level {
	if o.Trace || os.Getenv(TraceEnv) != "" {
		return log.TraceLevel
	}
	if o.Debug || os.Getenv(DebugEnv) != "" {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// Apply sets the logrus level.
func (o *Options) Apply() {
	log.SetLevel(o.Level())
}
