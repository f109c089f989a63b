package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRegistry_RejectsClash(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&RmCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&RmCmd{}); err == nil {
		t.Fatal("expected duplicate name error")
	}
	if _, ok := r.Find("delete"); !ok {
		t.Error("expected alias to resolve")
	}
	if n := len(r.All()); n != 1 {
		t.Errorf("expected 1 command, got %d", n)
	}
}

func TestRegistry_AllSorted(t *testing.T) {
	r := NewRegistry()
	for _, c := range []Command{&VersionCmd{}, &AddCmd{}, &ListCmd{}} {
		if err := r.Register(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	var names []string
	for _, c := range r.All() {
		names = append(names, c.Name())
	}
	if got := strings.Join(names, ","); got != "add,list,version" {
		t.Errorf("expected add,list,version, got %s", got)
	}
}

func TestHelp_ListsRegisteredCommands(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&RmCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out bytes.Buffer
	(&HelpCmd{Registry: r}).Run(context.Background(), nil, nil, nil, &out, nil)

	if !strings.Contains(out.String(), "  taskboard rm [common flags] <n>\n      Delete a task (alias: delete)\n") {
		t.Errorf("unexpected help output:\n%s", out.String())
	}
	if strings.Contains(out.String(), "taskboard add") {
		t.Error("help should only list registered commands")
	}
}
