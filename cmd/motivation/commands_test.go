package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/motivation-app/motivation/internal/adapters/fs"
	"github.com/motivation-app/motivation/pkg/display"
	"github.com/motivation-app/motivation/pkg/settings"
)

func TestFormatBirthday(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	if got := formatBirthday(settings.Unset(), tokyo); got != "unset" {
		t.Errorf("formatBirthday(unset) = %q", got)
	}

	b := settings.BirthdayAt(time.Date(1990, 6, 15, 8, 30, 0, 0, time.UTC))
	if got := formatBirthday(b, tokyo); got != "1990-06-15T17:30:00+09:00" {
		t.Errorf("formatBirthday() = %q", got)
	}
}

func TestDescribeLevel(t *testing.T) {
	if got := describeLevel(settings.Moderate); got != "moderate (8 decimal places)" {
		t.Errorf("describeLevel() = %q", got)
	}
}

// run executes the command tree against a private settings dir and returns
// what it printed.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	root, _ := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--settings-dir", dir, "--timezone", "UTC", "--log-level", "disabled"}, args...))
	err := root.Execute()
	return out.String(), err
}

func newCLITest(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return t.TempDir()
}

func TestBirthdayCommands(t *testing.T) {
	dir := newCLITest(t)

	out, err := run(t, dir, "birthday", "set", "1990-06-15T08:30")
	if err != nil {
		t.Fatalf("birthday set: %v", err)
	}
	if out != "birthday set to 1990-06-15T08:30:00Z\n" {
		t.Errorf("birthday set printed %q", out)
	}

	if sec, ok, err := fs.NewSettingsFile(dir, nil).Birthday(); err != nil || !ok || sec != 645438600 {
		t.Errorf("stored birthday = %v, %v, %v; want 645438600", sec, ok, err)
	}

	out, err = run(t, dir, "birthday", "show")
	if err != nil || out != "1990-06-15T08:30:00Z\n" {
		t.Errorf("birthday show = %q, %v", out, err)
	}

	out, err = run(t, dir, "birthday", "clear")
	if err != nil || out != "birthday cleared\n" {
		t.Errorf("birthday clear = %q, %v", out, err)
	}

	out, err = run(t, dir, "birthday", "show")
	if err != nil || out != "unset\n" {
		t.Errorf("birthday show after clear = %q, %v", out, err)
	}
}

func TestBirthdaySet_Invalid(t *testing.T) {
	dir := newCLITest(t)

	for _, arg := range []string{"15/06/1990", "@-1e19", "@NaN"} {
		if _, err := run(t, dir, "birthday", "set", arg); !errors.Is(err, settings.ErrInvalidBirthday) {
			t.Errorf("birthday set %s error = %v, want ErrInvalidBirthday", arg, err)
		}
	}
	if _, ok, _ := fs.NewSettingsFile(dir, nil).Birthday(); ok {
		t.Error("invalid input should not be stored")
	}
}

func TestLevelCommands(t *testing.T) {
	dir := newCLITest(t)

	out, err := run(t, dir, "level", "show")
	if err != nil || out != "terrifying (9 decimal places)\n" {
		t.Errorf("level show = %q, %v", out, err)
	}

	out, err = run(t, dir, "level", "set", "moderate")
	if err != nil || out != "precision level set to moderate (8 decimal places)\n" {
		t.Errorf("level set = %q, %v", out, err)
	}
	if raw, ok, err := fs.NewSettingsFile(dir, nil).PrecisionLevel(); err != nil || !ok || raw != 1 {
		t.Errorf("stored level = %v, %v, %v; want 1", raw, ok, err)
	}

	if _, err := run(t, dir, "level", "set", "7"); !errors.Is(err, settings.ErrInvalidPrecisionLevel) {
		t.Errorf("level set 7 error = %v, want ErrInvalidPrecisionLevel", err)
	}

	out, err = run(t, dir, "level", "show")
	if err != nil || out != "moderate (8 decimal places)\n" {
		t.Errorf("level show after set = %q, %v", out, err)
	}
}

func TestAgeCommand(t *testing.T) {
	dir := newCLITest(t)

	out, err := run(t, dir, "age")
	if err != nil || out != display.DefaultPrompt+"\n" {
		t.Errorf("age without birthday = %q, %v", out, err)
	}

	out, err = run(t, dir, "--prompt", "no birthday yet", "age")
	if err != nil || out != "no birthday yet\n" {
		t.Errorf("age with --prompt = %q, %v", out, err)
	}

	if _, err := run(t, dir, "birthday", "set", "2000-01-01"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, dir, "level", "set", "moderate"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"age", "--at", "2000-07-02"}, "0.50000000\n"},
		{[]string{"age", "--at", "2000-07-02", "--level", "light"}, "0.5000000\n"},
		{[]string{"age", "--at", "2000-07-02T00:00:00Z", "--level", "2"}, "0.500000000\n"},
		{[]string{"age", "--at", "2034-01-01"}, "34.00000000\n"},
	}
	for _, tt := range tests {
		out, err := run(t, dir, tt.args...)
		if err != nil || out != tt.want {
			t.Errorf("%v = %q, %v; want %q", tt.args, out, err, tt.want)
		}
	}

	if _, err := run(t, dir, "age", "--level", "extreme"); !errors.Is(err, settings.ErrInvalidPrecisionLevel) {
		t.Errorf("age --level extreme error = %v, want ErrInvalidPrecisionLevel", err)
	}
	if _, err := run(t, dir, "age", "--at", "soon"); !errors.Is(err, settings.ErrInvalidBirthday) {
		t.Errorf("age --at soon error = %v, want ErrInvalidBirthday", err)
	}
}

func TestRootOnce(t *testing.T) {
	dir := newCLITest(t)

	out, err := run(t, dir, "--once")
	if err != nil || out != display.DefaultPrompt+"\n" {
		t.Errorf("--once = %q, %v", out, err)
	}
}

func TestSetup_MissingConfigFile(t *testing.T) {
	dir := newCLITest(t)

	if _, err := run(t, dir, "--config", dir+"/nope.toml", "level", "show"); err == nil {
		t.Error("expected an error for a missing --config file")
	}
}
