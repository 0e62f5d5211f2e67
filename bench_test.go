package kvs

import (
	"strconv"
	"strings"
	"testing"
)

func BenchmarkSet(b *testing.B) {
	dir := b.TempDir()
	s, _ := Open(dir, Config{})
	defer s.Close()

	content := strings.Repeat("x", 1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Set("key"+strconv.Itoa(i), content)
	}
}

func BenchmarkSetSameKey(b *testing.B) {
	dir := b.TempDir()
	s, _ := Open(dir, Config{})
	defer s.Close()

	content := strings.Repeat("x", 1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Set("key", content)
	}
}

func BenchmarkGet(b *testing.B) {
	dir := b.TempDir()
	s, _ := Open(dir, Config{})
	defer s.Close()

	s.Set("key", "content")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Get("key")
	}
}

func BenchmarkGetManyKeys(b *testing.B) {
	dir := b.TempDir()
	s, _ := Open(dir, Config{})
	defer s.Close()

	for i := 0; i < 1000; i++ {
		s.Set("key"+strconv.Itoa(i), "content")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Get("key" + strconv.Itoa(i%1000))
	}
}

func BenchmarkCompact(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		dir := b.TempDir()
		s, _ := Open(dir, Config{})
		for j := 0; j < 100; j++ {
			s.Set("key"+strconv.Itoa(j), "content")
		}
		b.StartTimer()

		s.compact()

		b.StopTimer()
		s.Close()
	}
}

func BenchmarkQuickHash(b *testing.B) {
	for i := 0; i < b.N; i++ {
		quickHash("test-key")
	}
}
