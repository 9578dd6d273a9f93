// ABOUTME: Tests for the in-memory TTL store
// ABOUTME: Validates set/get, expiration, and deletion behavior

package cache

import (
	"testing"
	"time"
)

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory()

	m.Set("key1", []byte("value1"), time.Minute)

	val, found := m.Get("key1")
	if !found {
		t.Fatal("Expected to find key1")
	}
	if string(val) != "value1" {
		t.Errorf("Expected value1, got %s", val)
	}
}

func TestMemory_GetMissing(t *testing.T) {
	m := NewMemory()

	if _, found := m.Get("nope"); found {
		t.Error("Expected miss for absent key")
	}
}

func TestMemory_Expiration(t *testing.T) {
	m := NewMemory()

	m.Set("short", []byte("v"), 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, found := m.Get("short"); found {
		t.Error("Expected expired entry to be a miss")
	}
}

func TestMemory_Delete(t *testing.T) {
	m := NewMemory()

	m.Set("key1", []byte("v"), time.Minute)
	m.Delete("key1")

	if _, found := m.Get("key1"); found {
		t.Error("Expected deleted key to be a miss")
	}
}

func TestMemory_Overwrite(t *testing.T) {
	m := NewMemory()

	m.Set("key1", []byte("old"), time.Minute)
	m.Set("key1", []byte("new"), time.Minute)

	val, found := m.Get("key1")
	if !found {
		t.Fatal("Expected to find key1")
	}
	if string(val) != "new" {
		t.Errorf("Expected new, got %s", val)
	}
}
