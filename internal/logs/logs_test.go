package logs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/op/go-logging"
)

func TestSetupFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(&buf, "INFO"); err != nil {
		t.Fatal(err)
	}
	log := logging.MustGetLogger("play")
	log.Debugf("hidden")
	log.Infof("shown %d", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message leaked: %q", out)
	}
	if !strings.Contains(out, "shown 1") {
		t.Errorf("info message missing: %q", out)
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if err := Setup(&bytes.Buffer{}, "LOUD"); err == nil {
		t.Error("unknown level accepted")
	}
}
