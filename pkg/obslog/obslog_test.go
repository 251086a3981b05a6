package obslog

import "testing"

func TestNopLoggerDoesNotPanic(t *testing.T) {
	l := Nop()
	l.Info("rendering started", String("scene", "demo"), Int("width", 400))
	l.Warn("slow stripe", Float64("seconds", 1.25))
	l.Error("pixel write failed", Err(nil))
	if err := l.Sync(); err != nil {
		t.Logf("Sync() on a nop logger returned %v (expected on some platforms)", err)
	}
}

func TestWithAttachesFields(t *testing.T) {
	l := Nop().With(String("component", "dispatch"))
	l.Info("worker started", Int("worker", 2))
}
