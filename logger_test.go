package brush

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler(t *testing.T) {
	var h slog.Handler = nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("tool", "brush")}).(nopHandler); !ok {
		t.Error("WithAttrs() left the nop handler")
	}
	if _, ok := h.WithGroup("stroke").(nopHandler); !ok {
		t.Error("WithGroup() left the nop handler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger enabled for %v", level)
		}
	}
}

// captureLogger installs a debug-level text logger for the duration of t.
func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestSetLoggerReachesSessions(t *testing.T) {
	buf := captureLogger(t)

	s, err := NewSession(NewCanvas(16, 16))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.PointerDown(Pt(8, 8), ButtonPrimary)
	s.PointerUp()

	out := buf.String()
	for _, want := range []string{"session created", "stroke begin", "stroke end"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryFailureWarnsOnce(t *testing.T) {
	buf := captureLogger(t)

	fs := &failingStorage{Storage: NewMemoryStorage(), failSave: true}
	s, err := NewSession(NewCanvas(32, 32), WithHistoryStorage(fs))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.PointerDown(Pt(4, 16), ButtonPrimary)
	s.PointerMove(Pt(28, 16))
	s.PointerUp()

	if n := strings.Count(buf.String(), "history snapshot failed"); n != 1 {
		t.Errorf("snapshot failure logged %d times, want 1", n)
	}
	if got := s.Canvas().GetPixel(16, 16); got.A == 0 {
		t.Error("stroke was not painted after the history failure")
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should set nop logger, not nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("concurrent read")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkLoggerDisabledStamp(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("brush: stamp", "x", 1.5, "y", 2.5)
	}
}
