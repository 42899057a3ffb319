package keymap

import "testing"

func TestByContext(t *testing.T) {
	global := ByContext("global")
	if len(global) == 0 {
		t.Fatal("no global bindings")
	}
	for _, b := range global {
		if b.Context != "global" {
			t.Errorf("binding %v leaked into global context", b.Action)
		}
	}
}

func TestNoDuplicateKeysWithinContext(t *testing.T) {
	for _, context := range []string{"global", "browser", "queue"} {
		seen := make(map[string]Action)
		for _, b := range ByContext(context) {
			for _, key := range b.Keys {
				if prev, ok := seen[key]; ok {
					t.Errorf("context %s: key %q bound to both %s and %s", context, key, prev, b.Action)
				}
				seen[key] = b.Action
			}
		}
	}
}

func TestGlobalAndContextKeysDisjoint(t *testing.T) {
	global := make(map[string]bool)
	for _, b := range ByContext("global") {
		for _, key := range b.Keys {
			global[key] = true
		}
	}
	for _, context := range []string{"browser", "queue"} {
		for _, b := range ByContext(context) {
			for _, key := range b.Keys {
				if global[key] {
					t.Errorf("key %q in context %s shadows a global binding", key, context)
				}
			}
		}
	}
}

func TestResolver(t *testing.T) {
	r := NewResolver(ByContext("global"))

	if got := r.Resolve(" "); got != ActionPlayPause {
		t.Errorf("Resolve(space) = %s, want %s", got, ActionPlayPause)
	}
	if got := r.Resolve("z"); got != "" {
		t.Errorf("Resolve(unbound) = %s, want empty", got)
	}
}

func TestResolverKeysFor(t *testing.T) {
	r := NewResolver(ByContext("global"))

	keys := r.KeysFor(ActionQuit)
	if len(keys) != 2 {
		t.Fatalf("KeysFor(quit) = %v, want two keys", keys)
	}
}
