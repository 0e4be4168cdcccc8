package service

import (
	"errors"
	"testing"
)

type fakeService struct {
	name    string
	deps    []string
	initErr error
	runErr  error
	log     *[]string
	args    []any
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }

func (f *fakeService) Init(args ...any) error {
	f.args = args
	*f.log = append(*f.log, "init:"+f.name)
	return f.initErr
}

func (f *fakeService) Start() error {
	*f.log = append(*f.log, "start:"+f.name)
	return f.runErr
}

func (f *fakeService) Stop() error {
	*f.log = append(*f.log, "stop:"+f.name)
	return nil
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestHubOrderAndLifecycle(t *testing.T) {
	var log []string
	h := NewHub(nil)
	bridge := &fakeService{name: "bridge", deps: []string{"audio"}, log: &log}
	_ = h.Register(bridge)
	_ = h.Register(&fakeService{name: "audio", log: &log})

	if err := h.InitAll(map[string][]any{"bridge": {":8080"}}); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	h.StopAll()

	expected := []string{"init:audio", "init:bridge", "start:audio", "start:bridge", "stop:bridge", "stop:audio"}
	if !equal(log, expected) {
		t.Errorf("Expected %v, got %v", expected, log)
	}
	if len(bridge.args) != 1 || bridge.args[0] != ":8080" {
		t.Errorf("Expected bridge args [:8080], got %v", bridge.args)
	}
	if got := MustGet[*fakeService](h, "audio").name; got != "audio" {
		t.Errorf("Expected audio, got %s", got)
	}
}

func TestHubCircular(t *testing.T) {
	var log []string
	h := NewHub(nil)
	_ = h.Register(&fakeService{name: "a", deps: []string{"b"}, log: &log})
	_ = h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log})

	if err := h.InitAll(nil); !errors.Is(err, ErrCircular) {
		t.Errorf("Expected ErrCircular, got %v", err)
	}
}

func TestHubUnknownAndDuplicate(t *testing.T) {
	var log []string
	h := NewHub(nil)
	if err := h.Register(&fakeService{name: "a", deps: []string{"ghost"}, log: &log}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := h.Register(&fakeService{name: "a", log: &log}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}
	if err := h.InitAll(nil); !errors.Is(err, ErrUnknownDependency) {
		t.Errorf("Expected ErrUnknownDependency, got %v", err)
	}
}

func TestHubStartRollback(t *testing.T) {
	var log []string
	h := NewHub(nil)
	_ = h.Register(&fakeService{name: "a", log: &log})
	_ = h.Register(&fakeService{name: "b", deps: []string{"a"}, runErr: errors.New("bind failed"), log: &log})

	if err := h.InitAll(nil); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if err := h.StartAll(); err == nil {
		t.Fatal("Expected start failure")
	}

	expected := []string{"init:a", "init:b", "start:a", "start:b", "stop:a"}
	if !equal(log, expected) {
		t.Errorf("Expected %v, got %v", expected, log)
	}
	t.Log("✓ Started services rolled back")
}
