package profile

import "testing"

func TestMake(t *testing.T) {
	c := Make(WithMode("cpu"), WithPath("/tmp/p"), WithQuiet(true))

	if c != (Config{Mode: "cpu", Path: "/tmp/p", Quiet: true}) {
		t.Errorf("Make() = %+v", c)
	}
}

func TestStart_NoMode(t *testing.T) {
	if _, ok := Make(WithPath(t.TempDir())).Start().(ignore); !ok {
		t.Error("Start without a mode did not return a no-op")
	}
}

func TestStart_UnknownMode(t *testing.T) {
	s := Make(WithMode("bogus"), WithPath(t.TempDir()), WithQuiet(true)).Start()
	defer s.Stop()

	if _, ok := s.(ignore); !ok {
		t.Error("Start with an unknown mode did not return a no-op")
	}
}
