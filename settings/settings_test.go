package settings

import (
	"io"
	"log"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func quiet() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// openStore points gdata at a throwaway home directory
func openStore(t *testing.T) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")
	store, err := gdata.Open(gdata.Config{AppName: "zengarden_settings_test"})
	if err != nil {
		t.Skipf("gdata storage unavailable: %v", err)
	}
	return store
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	if !d.DanceFloor || !d.ClubLights || d.Muted {
		t.Errorf("Defaults() = %+v", d)
	}
}

func TestMemoryOnly(t *testing.T) {
	m := NewManager(nil, quiet())
	if m.Persistent() {
		t.Error("nil store reported persistent")
	}
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got, err := m.Update(func(tg *Toggles) { tg.Muted = true })
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !got.Muted || !m.Toggles().Muted {
		t.Error("update not applied")
	}
}

func TestRoundTrip(t *testing.T) {
	store := openStore(t)

	m := NewManager(store, quiet())
	if err := m.Load(); err != nil {
		t.Fatalf("Load on empty store: %v", err)
	}
	if m.Toggles() != Defaults() {
		t.Errorf("empty store toggles = %+v", m.Toggles())
	}
	if _, err := m.Update(func(tg *Toggles) {
		tg.DanceFloor = false
		tg.Muted = true
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	reopened := NewManager(store, quiet())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Toggles{DanceFloor: false, ClubLights: true, Muted: true}
	if got := reopened.Toggles(); got != want {
		t.Errorf("reloaded = %+v, want %+v", got, want)
	}
}

func TestCorruptDataResetsToDefaults(t *testing.T) {
	store := openStore(t)
	if err := store.SaveObjectProp(object, property, []byte("dance_floor: [")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	m := NewManager(store, quiet())
	m.toggles.Muted = true
	if err := m.Load(); err == nil {
		t.Fatal("expected decode error")
	}
	if m.Toggles() != Defaults() {
		t.Errorf("toggles = %+v, want defaults", m.Toggles())
	}
}

func TestOpenDegrades(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	m, err := Open("zengarden_settings_test", quiet())
	if m == nil {
		t.Fatal("Open returned nil manager")
	}
	if err != nil && m.Persistent() {
		t.Errorf("error %v with persistent manager", err)
	}
}
