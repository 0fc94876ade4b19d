package logsetup

import (
	"flag"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	t.Setenv(DebugEnv, "")
	t.Setenv(TraceEnv, "")

	testCases := []struct {
		args []string
		want log.Level
	}{
		{nil, log.InfoLevel},
		{[]string{"-debug"}, log.DebugLevel},
		{[]string{"-trace"}, log.TraceLevel},
		{[]string{"-debug", "-trace"}, log.TraceLevel},
	}
	for _, tc := range testCases {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		o := Register(fs)
		require.NoError(t, fs.Parse(tc.args))
		assert.Equal(t, tc.want, o.Level(), "args %v", tc.args)
	}
}

func TestLevelFromEnvironment(t *testing.T) {
	t.Setenv(DebugEnv, "1")
	t.Setenv(TraceEnv, "")
	o := &Options{}
	assert.Equal(t, log.DebugLevel, o.Level())

	t.Setenv(TraceEnv, "1")
	assert.Equal(t, log.TraceLevel, o.Level())
}

func TestApply(t *testing.T) {
	t.Setenv(DebugEnv, "")
	t.Setenv(TraceEnv, "")
	defer log.SetLevel(log.GetLevel())
	(&Options{Debug: true}).Apply()
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}
