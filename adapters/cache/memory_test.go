package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestMemoRoundTrip(t *testing.T) {
	memo := NewMemo(time.Minute, 8)

	memo.Set("k", []byte("v"))

	got, ok := memo.Get("k")
	if !ok {
		t.Fatal("Expected a hit after Set")
	}
	if string(got) != "v" {
		t.Errorf("Expected v, got %q", got)
	}

	if _, ok := memo.Get("missing"); ok {
		t.Error("Expected a miss for an unknown key")
	}
}

func TestMemoExpiry(t *testing.T) {
	memo := NewMemo(20*time.Millisecond, 8)

	memo.Set("k", []byte("v"))
	time.Sleep(30 * time.Millisecond)

	if _, ok := memo.Get("k"); ok {
		t.Error("Expected a miss after the TTL elapsed")
	}
}

func TestMemoEvictsOldestAtCapacity(t *testing.T) {
	memo := NewMemo(time.Minute, 2)

	memo.Set("a", []byte("1"))
	time.Sleep(time.Millisecond)
	memo.Set("b", []byte("2"))
	time.Sleep(time.Millisecond)
	memo.Set("c", []byte("3"))

	if _, ok := memo.Get("a"); ok {
		t.Error("Expected the oldest entry to be evicted at capacity")
	}
	if _, ok := memo.Get("b"); !ok {
		t.Error("Expected b to survive eviction")
	}
	if _, ok := memo.Get("c"); !ok {
		t.Error("Expected c to be stored")
	}
}

func TestMemoSetExistingKeyDoesNotEvict(t *testing.T) {
	memo := NewMemo(time.Minute, 2)

	memo.Set("a", []byte("1"))
	memo.Set("b", []byte("2"))
	memo.Set("a", []byte("updated"))

	got, ok := memo.Get("a")
	if !ok || string(got) != "updated" {
		t.Errorf("Expected updated value for a, got %q (hit=%v)", got, ok)
	}
	if _, ok := memo.Get("b"); !ok {
		t.Error("Overwriting an existing key must not evict another entry")
	}
}

func TestMemoConcurrentAccess(t *testing.T) {
	memo := NewMemo(time.Minute, 64)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d", j%16)
				memo.Set(key, []byte(key))
				memo.Get(key)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
