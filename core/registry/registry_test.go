package registry

import "testing"

func TestRegistry_SetGet(t *testing.T) {
	r := New()
	if _, ok := r.GetGlobal("missing"); ok {
		t.Fatal("empty registry returned a value")
	}
	r.SetGlobal("k", 42)
	v, ok := r.GetGlobal("k")
	if !ok || v.(int) != 42 {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestRegistry_LockedKeyPanics(t *testing.T) {
	r := New()
	r.SetGlobal("k", 1)
	r.Lock("k")
	if !r.IsLocked("k") {
		t.Fatal("key not reported locked")
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic writing a locked key")
		}
	}()
	r.SetGlobal("k", 2)
}

func TestRegistry_UnlockForTesting(t *testing.T) {
	r := New()
	r.Lock("k")
	r.UnlockForTesting("k")
	r.SetGlobal("k", "again") // must not panic
	if v, _ := r.GetGlobal("k"); v != "again" {
		t.Fatalf("got %v", v)
	}
}
