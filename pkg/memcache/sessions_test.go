package mem

import (
	"testing"
	"time"
)

func TestSessionsSetGetDelete(t *testing.T) {
	s := NewSessions[string](time.Hour)

	var evicted []string
	s.OnEvict(func(id, value string) { evicted = append(evicted, id+"="+value) })

	s.Set("a", "one")
	s.Set("b", "two")
	if v, ok := s.Get("a"); !ok || v != "one" {
		t.Fatalf("unexpected %q %v", v, ok)
	}
	if s.Count() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Count())
	}

	s.Delete("a")
	if _, ok := s.Get("a"); ok {
		t.Fatal("deleted entry still present")
	}
	if len(evicted) != 1 || evicted[0] != "a=one" {
		t.Fatalf("unexpected evictions %v", evicted)
	}
}

func TestSessionsExpire(t *testing.T) {
	s := NewSessions[int](20 * time.Millisecond)
	s.Set("a", 1)

	time.Sleep(40 * time.Millisecond)
	if _, ok := s.Get("a"); ok {
		t.Fatal("entry survived its TTL")
	}
}

func TestSessionsSlidingTTL(t *testing.T) {
	s := NewSessions[int](150 * time.Millisecond)
	s.Set("a", 1)

	for i := 0; i < 4; i++ {
		time.Sleep(50 * time.Millisecond)
		if _, ok := s.Get("a"); !ok {
			t.Fatalf("entry expired despite access on round %d", i)
		}
	}
}
