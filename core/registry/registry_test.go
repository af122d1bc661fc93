package registry

import "testing"

func TestRegistry_SetGet(t *testing.T) {
	r := New()
	if _, ok := r.GetGlobal("missing"); ok {
		t.Error("GetGlobal missing: want false")
	}
	r.SetGlobal("k", 42)
	v, ok := r.GetGlobal("k")
	if !ok || v.(int) != 42 {
		t.Errorf("GetGlobal = %v, %v; want 42, true", v, ok)
	}
}

func TestRegistry_Lock(t *testing.T) {
	r := New()
	if r.IsLocked(KeyRegistryCmd) {
		t.Fatal("new registry should be unlocked")
	}
	r.Lock(KeyRegistryCmd)
	if !r.IsLocked(KeyRegistryCmd) {
		t.Error("Lock: want locked")
	}
	if r.IsLocked(KeyRegistryCron) {
		t.Error("Lock must be per key")
	}
	r.UnlockForTesting(KeyRegistryCmd)
	if r.IsLocked(KeyRegistryCmd) {
		t.Error("UnlockForTesting: want unlocked")
	}
}
