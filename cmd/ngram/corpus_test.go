package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestResolveCorpusPath(t *testing.T) {
	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv(envCorpus, "/from/env.txt")
		got, err := resolveCorpusPath(" /from/flag.txt ")
		if err != nil {
			t.Fatalf("resolveCorpusPath returned error: %v", err)
		}
		if got != "/from/flag.txt" {
			t.Fatalf("unexpected path: %q", got)
		}
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(envCorpus, "/from/env.txt")
		got, err := resolveCorpusPath("")
		if err != nil {
			t.Fatalf("resolveCorpusPath returned error: %v", err)
		}
		if got != "/from/env.txt" {
			t.Fatalf("unexpected path: %q", got)
		}
	})

	t.Run("nothing set", func(t *testing.T) {
		t.Setenv(envCorpus, "")
		if _, err := resolveCorpusPath(""); err == nil {
			t.Fatalf("expected error when no corpus is configured")
		}
	})
}

func TestLoadCorpus(t *testing.T) {
	keepCase, keepPunctuation = false, false

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "text.txt")
		if err := os.WriteFile(path, []byte("The cat, the DOG!\nthe end."), 0o644); err != nil {
			t.Fatalf("write corpus: %v", err)
		}
		got, err := loadCorpus(context.Background(), path)
		if err != nil {
			t.Fatalf("loadCorpus returned error: %v", err)
		}
		want := []string{"the", "cat", "the", "dog", "the", "end"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("unexpected tokens: got %v want %v", got, want)
		}
	})

	t.Run("stdin", func(t *testing.T) {
		old := stdinReader
		stdinReader = strings.NewReader("a b a")
		defer func() { stdinReader = old }()

		got, err := loadCorpus(context.Background(), "-")
		if err != nil {
			t.Fatalf("loadCorpus returned error: %v", err)
		}
		if !reflect.DeepEqual(got, []string{"a", "b", "a"}) {
			t.Fatalf("unexpected tokens: %v", got)
		}
	})

	t.Run("empty corpus", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.txt")
		if err := os.WriteFile(path, []byte(" , . \n"), 0o644); err != nil {
			t.Fatalf("write corpus: %v", err)
		}
		if _, err := loadCorpus(context.Background(), path); err == nil {
			t.Fatalf("expected error for a corpus without tokens")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := loadCorpus(context.Background(), filepath.Join(t.TempDir(), "nope.txt")); err == nil {
			t.Fatalf("expected error for a missing file")
		}
	})
}
