package workflow

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"bakery_recommend/internal/model"
)

type fakeNode struct {
	name  string
	err   error
	panic bool
	calls *int32
	run   func(ctx *Context)
}

func (n *fakeNode) Name() string { return n.name }
func (n *fakeNode) Type() string { return "fake" }

func (n *fakeNode) Execute(ctx *Context) error {
	if n.calls != nil {
		atomic.AddInt32(n.calls, 1)
	}
	if n.panic {
		panic("boom")
	}
	if n.run != nil {
		n.run(ctx)
	}
	return n.err
}

func newTestRegistry(calls *int32) *Registry {
	r := NewRegistry()
	r.Register("fake", func(cfg NodeConfig) (Node, error) {
		n := &fakeNode{name: cfg.Name, calls: calls}
		if msg, ok := cfg.Config["fail"].(string); ok {
			n.err = errors.New(msg)
		}
		if p, ok := cfg.Config["panic"].(bool); ok {
			n.panic = p
		}
		return n, nil
	})
	return r
}

func newTestContext() *Context {
	return NewContext(context.Background(), "req-1", &model.Request{}, nil)
}

func TestEngineRun(t *testing.T) {
	var calls int32
	cfg := `{"pipelines": {
		"combos": {"nodes": [{"name": "a", "type": "fake"}, {"name": "b", "type": "fake"}]},
		"drinks": {"nodes": [{"name": "c", "type": "fake"}]}
	}}`
	engine, err := NewEngineFromJSON([]byte(cfg), newTestRegistry(&calls))
	if err != nil {
		t.Fatalf("NewEngineFromJSON: %v", err)
	}

	if got := strings.Join(engine.Scenes(), ","); got != "combos,drinks" {
		t.Errorf("Scenes() = %s", got)
	}

	ctx := newTestContext()
	if err := engine.Run(ctx, "combos"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 node executions, got %d", calls)
	}
	if logs := ctx.Logs(); logs[len(logs)-1] != "Pipeline execution completed" {
		t.Errorf("unexpected trace log: %v", logs)
	}

	err = engine.Run(newTestContext(), "brunch")
	if !errors.Is(err, ErrPipelineNotFound) {
		t.Errorf("expected ErrPipelineNotFound, got %v", err)
	}
}

func TestEngineStopsOnNodeError(t *testing.T) {
	var calls int32
	cfg := `{"pipelines": {"combos": {"nodes": [
		{"name": "bad", "type": "fake", "config": {"fail": "no catalog"}},
		{"name": "never", "type": "fake"}
	]}}}`
	engine, err := NewEngineFromJSON([]byte(cfg), newTestRegistry(&calls))
	if err != nil {
		t.Fatalf("NewEngineFromJSON: %v", err)
	}
	err = engine.Run(newTestContext(), "combos")
	if err == nil || !strings.Contains(err.Error(), "node bad: no catalog") {
		t.Errorf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("pipeline should stop after failing node, calls=%d", calls)
	}
}

func TestEngineCancelledContext(t *testing.T) {
	var calls int32
	engine, err := NewEngineFromJSON([]byte(`{"pipelines": {"combos": {"nodes": [{"name": "a", "type": "fake"}]}}}`), newTestRegistry(&calls))
	if err != nil {
		t.Fatalf("NewEngineFromJSON: %v", err)
	}
	c, cancel := context.WithCancel(context.Background())
	cancel()

	err = engine.Run(NewContext(c, "req", &model.Request{}, nil), "combos")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("no node should run, calls=%d", calls)
	}
}

func TestNewEngineErrors(t *testing.T) {
	reg := newTestRegistry(nil)
	tests := []struct {
		name string
		cfg  string
		want string
	}{
		{"bad json", `{"pipelines":`, "failed to parse pipeline config"},
		{"no pipelines", `{"pipelines": {}}`, "declares no pipelines"},
		{"unknown type", `{"pipelines": {"x": {"nodes": [{"name": "n", "type": "recall_llm"}]}}}`, "unknown node type: recall_llm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngineFromJSON([]byte(tt.cfg), reg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if _, err := NewEngine("does-not-exist.json", reg); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParallelNode(t *testing.T) {
	t.Run("partial success", func(t *testing.T) {
		ctx := newTestContext()
		n := NewParallelNode("branches", []Node{
			&fakeNode{name: "ok", run: func(c *Context) { c.SetCombosStatus(StatusOK) }},
			&fakeNode{name: "bad", err: errors.New("failed")},
		})
		if err := n.Execute(ctx); err != nil {
			t.Fatalf("partial success should not fail: %v", err)
		}
		if ctx.GetCombosStatus() != StatusOK {
			t.Errorf("branch status lost: %s", ctx.GetCombosStatus())
		}
		errs := ctx.BranchErrors()
		if len(errs) != 1 || errs[0].Node != "bad" || !strings.Contains(errs[0].Message, "failed") {
			t.Errorf("branch errors = %+v", errs)
		}
		if ctx.GetStatus() != StatusPartial {
			t.Errorf("status = %s, want partial", ctx.GetStatus())
		}
	})

	t.Run("all fail", func(t *testing.T) {
		n := NewParallelNode("branches", []Node{
			&fakeNode{name: "a", err: errors.New("x")},
			&fakeNode{name: "b", panic: true},
		}).WithLimit(1)
		err := n.Execute(newTestContext())
		if err == nil {
			t.Fatal("expected aggregated error")
		}
		if !strings.Contains(err.Error(), "node a: x") || !strings.Contains(err.Error(), "node b panic") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("created from config", func(t *testing.T) {
		var calls int32
		cfg := `{"pipelines": {"pairing": {"nodes": [{"name": "p", "type": "parallel", "config": {"max_concurrency": 2},
			"nodes": [{"name": "a", "type": "fake"}, {"name": "b", "type": "fake"}, {"name": "c", "type": "fake"}]}]}}}`
		engine, err := NewEngineFromJSON([]byte(cfg), newTestRegistry(&calls))
		if err != nil {
			t.Fatalf("NewEngineFromJSON: %v", err)
		}
		if err := engine.Run(newTestContext(), "pairing"); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if calls != 3 {
			t.Errorf("expected 3 branch executions, got %d", calls)
		}
	})
}

func TestContextStatus(t *testing.T) {
	tests := []struct {
		name   string
		combos string
		items  string
		failed bool
		want   string
	}{
		{"nothing ran", "", "", false, StatusOK},
		{"combos only", StatusBudgetTooLow, "", false, StatusBudgetTooLow},
		{"items only", "", StatusNoMatch, false, StatusNoMatch},
		{"both ok", StatusOK, StatusOK, false, StatusOK},
		{"both empty", StatusNoMatch, StatusNoMatch, false, StatusNoMatch},
		{"items empty", StatusOK, StatusNoMatch, false, StatusPartial},
		{"combos over budget", StatusBudgetTooLow, StatusOK, false, StatusPartial},
		{"branch failed", StatusOK, "", true, StatusPartial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext()
			if tt.combos != "" {
				ctx.SetCombosStatus(tt.combos)
			}
			if tt.items != "" {
				ctx.SetItemsStatus(tt.items)
			}
			if tt.failed {
				ctx.AddBranchError("drink_top3", errors.New("boom"))
			}
			if got := ctx.GetStatus(); got != tt.want {
				t.Errorf("GetStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}
