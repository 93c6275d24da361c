package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestVerbosityGating(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbosity(int(Info))
		SetOutput(&bytes.Buffer{})
	})

	SetVerbosity(int(Info))
	Infof("visible %d", 1)
	Debugf("hidden %d", 2)
	Tracef("hidden %d", 3)

	out := buf.String()
	if !strings.Contains(out, "visible 1") {
		t.Fatalf("info message missing: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug/trace leaked at info verbosity: %q", out)
	}

	buf.Reset()
	SetVerbosity(int(Trace))
	Tracef("deep %s", "detail")
	if out := buf.String(); !strings.Contains(out, "[trace] deep detail") || !strings.Contains(out, "DEBUG") {
		t.Fatalf("trace message missing: %q", out)
	}
}

func TestSetVerbosityClamps(t *testing.T) {
	t.Cleanup(func() { SetVerbosity(int(Info)) })

	SetVerbosity(-5)
	if Enabled(Info) || !Enabled(Error) {
		t.Fatalf("negative verbosity should clamp to Error")
	}
	SetVerbosity(99)
	if !Enabled(Trace) {
		t.Fatalf("large verbosity should clamp to Trace")
	}
}
