package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"taskboard/internal/cli"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// run dispatches args with a temporary config directory.
func run(t *testing.T, svc *testutil.FakeService, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testutil.NewFakeService(), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, testutil.NewFakeService(), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, testutil.NewFakeService(), "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, _, code := run(t, testutil.NewFakeService(), "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "taskboard 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, testutil.NewFakeService(), "list", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagAfterPositional(t *testing.T) {
	svc := testutil.NewFakeService()
	_, stderr, code := run(t, svc, "rm", "1", "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown flag: --quiet\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.TotalCalls() != 0 {
		t.Error("expected no store calls")
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	_, stderr, code := run(t, testutil.NewFakeService(), "add", "--title")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: flag needs an argument: -title\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_InvalidBaseURL(t *testing.T) {
	svc := testutil.NewFakeService()
	_, stderr, code := run(t, svc, "list", "--base-url", "not a url")

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.HasPrefix(stderr, "error: ") {
		t.Errorf("expected error output, got %q", stderr)
	}
	if svc.TotalCalls() != 0 {
		t.Error("expected no store calls")
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("unsupported scheme")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list"}, &stdout, &stderr)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if stderr.String() != "error: unsupported scheme\n" {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestDispatcher_DefaultIsList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(service.Task{ID: "7", Title: "X", Priority: "high", Status: "open"})

	stdout, stderr, code := run(t, svc)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "   1  Title : X\n") {
		t.Errorf("expected card output, got %q", stdout)
	}
	if svc.Calls("ListTasks") != 1 {
		t.Errorf("expected 1 list call, got %d", svc.Calls("ListTasks"))
	}
}

func TestDispatcher_AliasAndQuiet(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := run(t, svc, "create", "--quiet", "-t", "A", "--priority", "p", "--status", "s")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "A" {
		t.Errorf("unexpected tasks %+v", tasks)
	}
}
