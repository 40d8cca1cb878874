package kv

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_Get(t *testing.T) {
	s := New[string, int]()
	s.Replace(map[string]int{"foo": 42})

	val, ok := s.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	_, ok = s.Get("bar")
	assert.False(t, ok)
}

func TestStore_Replace(t *testing.T) {
	s := New[string, int]()
	s.Replace(map[string]int{"a": 1, "b": 2})

	s.Replace(map[string]int{"c": 3})

	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("a")
	assert.False(t, ok)
}

func TestStore_ReplaceCopiesInput(t *testing.T) {
	s := New[string, int]()
	items := map[string]int{"a": 1}
	s.Replace(items)

	items["b"] = 2

	assert.Equal(t, 1, s.Len())
}

func TestStore_Filter(t *testing.T) {
	s := New[string, string]()
	s.Replace(map[string]string{
		"amazing grace": "G",
		"be thou":       "D",
		"abide":         "Eb",
	})

	got := s.Filter(func(k, _ string) bool { return strings.HasPrefix(k, "a") })

	assert.Equal(t, []string{"Eb", "G"}, got)
	assert.Empty(t, s.Filter(func(string, string) bool { return false }))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New[int, int]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.Replace(map[int]int{n: n * 2})
		}(i)
		go func(n int) {
			defer wg.Done()
			s.Get(n)
			s.Filter(func(int, int) bool { return true })
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 1, s.Len())
}
