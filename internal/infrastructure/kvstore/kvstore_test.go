package kvstore

import (
	"bytes"
	"path/filepath"
	"testing"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	boltStore, err := OpenBolt(filepath.Join(t.TempDir(), "test.db"), "keyspace")
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	t.Cleanup(func() { boltStore.Close() })

	return map[string]Store{
		"bolt":   boltStore,
		"memory": NewMemory(),
	}
}

func TestStorePutGetDelete(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if v, err := store.Get("missing"); err != nil || v != nil {
				t.Fatalf("Get(missing) = %v, %v, want nil, nil", v, err)
			}

			if err := store.Put("key", []byte("one")); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := store.Put("key", []byte("two")); err != nil {
				t.Fatalf("Put overwrite: %v", err)
			}
			v, err := store.Get("key")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if !bytes.Equal(v, []byte("two")) {
				t.Errorf("Get = %q, want %q", v, "two")
			}

			if err := store.Delete("key"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			// Deleting an absent key is not an error.
			if err := store.Delete("key"); err != nil {
				t.Fatalf("Delete twice: %v", err)
			}
			if v, err := store.Get("key"); err != nil || v != nil {
				t.Fatalf("Get after delete = %v, %v, want nil, nil", v, err)
			}
		})
	}
}

func TestBoltSize(t *testing.T) {
	store, err := OpenBolt(filepath.Join(t.TempDir(), "size.db"), "")
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	defer store.Close()

	for _, key := range []string{"a", "b", "c"} {
		if err := store.Put(key, []byte("v")); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	size, err := store.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != 3 {
		t.Errorf("Size = %d, want 3", size)
	}
}

func TestBoltClosed(t *testing.T) {
	store, err := OpenBolt(filepath.Join(t.TempDir(), "closed.db"), "")
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	store.Close()
	store.db = nil

	if _, err := store.Get("key"); err != ErrClosed {
		t.Errorf("Get on closed store = %v, want ErrClosed", err)
	}
	if err := store.Put("key", nil); err != ErrClosed {
		t.Errorf("Put on closed store = %v, want ErrClosed", err)
	}
}
