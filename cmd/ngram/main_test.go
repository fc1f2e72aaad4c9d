package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ngramlab/internal/ngram"
)

func writeCorpus(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	return path
}

// runApp runs the CLI with a config path that does not exist so the
// developer's own config file never leaks into tests.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(envCorpus, "")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	base := []string{
		"ngram",
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--log-format", "text",
		"--log-level", "error",
	}
	err := app.Run(context.Background(), append(base, args...))
	return out.String(), err
}

func TestReportCommand(t *testing.T) {
	path := writeCorpus(t, "A b a b a c a.")

	out, err := runApp(t, "report", "--corpus", path, "--seed", "3", "--length", "12", "--max-order", "2")
	if err != nil {
		t.Fatalf("report returned error: %v\n%s", err, out)
	}
	for _, want := range []string{"Top 3 words", "Model tables", "unigram sample", "bigram sample", "Perplexity on the training text"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "trigram sample") {
		t.Fatalf("report should stop at --max-order:\n%s", out)
	}
}

func TestGenerateCommandIsDeterministic(t *testing.T) {
	path := writeCorpus(t, "a b a b a c a")

	first, err := runApp(t, "generate", "--corpus", path, "--order", "2", "--seed", "11", "--length", "20")
	if err != nil {
		t.Fatalf("generate returned error: %v\n%s", err, first)
	}
	second, err := runApp(t, "generate", "--corpus", path, "--order", "2", "--seed", "11", "--length", "20")
	if err != nil {
		t.Fatalf("generate returned error: %v\n%s", err, second)
	}
	if first != second {
		t.Fatalf("same seed produced different text:\n%q\n%q", first, second)
	}
	if got := len(strings.Fields(first)); got != 20 {
		t.Fatalf("unexpected token count: got %d want 20", got)
	}
}

func TestGenerateCommandRejectsInvalidOrder(t *testing.T) {
	path := writeCorpus(t, "a b a b a c a")

	_, err := runApp(t, "generate", "--corpus", path, "--order", "5")
	if err == nil {
		t.Fatalf("expected error for order 5")
	}
}

func TestScoreCommandSingleOrder(t *testing.T) {
	path := writeCorpus(t, "a b a b a c")

	out, err := runApp(t, "score", "--corpus", path, "--order", "1")
	if err != nil {
		t.Fatalf("score returned error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "unigram") || strings.Contains(out, "bigram") {
		t.Fatalf("unexpected score output:\n%s", out)
	}
}

func TestTopCommand(t *testing.T) {
	path := writeCorpus(t, "b a b c b a")

	out, err := runApp(t, "top", "--corpus", path, "--k", "2")
	if err != nil {
		t.Fatalf("top returned error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Top 2 words") {
		t.Fatalf("missing title:\n%s", out)
	}
	if strings.Index(out, " b ") > strings.Index(out, " a ") {
		t.Fatalf("expected b ranked before a:\n%s", out)
	}
	if strings.Contains(out, " c ") {
		t.Fatalf("expected only two words:\n%s", out)
	}
}

func TestExportCommandWritesSnapshot(t *testing.T) {
	path := writeCorpus(t, "a b a b a c")
	outPath := filepath.Join(t.TempDir(), "nested", "model.json")

	if out, err := runApp(t, "export", "--corpus", path, "--max-order", "2", "--out", outPath); err != nil {
		t.Fatalf("export returned error: %v\n%s", err, out)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()

	family, err := ngram.ReadSnapshot(f)
	if err != nil {
		t.Fatalf("ReadSnapshot returned error: %v", err)
	}
	if family.MaxOrder() != 2 {
		t.Fatalf("unexpected max order: %d", family.MaxOrder())
	}
	bigram, err := family.Table(2)
	if err != nil {
		t.Fatalf("Table(2) returned error: %v", err)
	}
	p, err := bigram.Probability(ngram.Context{"b"}, "a")
	if err != nil || p != 1 {
		t.Fatalf("unexpected P(a|b) = %v, %v", p, err)
	}
}

func TestExportCommandARPA(t *testing.T) {
	path := writeCorpus(t, "a b a b a c")

	out, err := runApp(t, "export", "--corpus", path, "--max-order", "2", "--format", "arpa")
	if err != nil {
		t.Fatalf("export returned error: %v\n%s", err, out)
	}
	for _, want := range []string{"\\data\\", "ngram 1=3", "ngram 2=3", "\\2-grams:", "\\end\\"} {
		if !strings.Contains(out, want) {
			t.Fatalf("arpa output missing %q:\n%s", want, out)
		}
	}
}

func TestExportCommandRejectsUnknownFormat(t *testing.T) {
	path := writeCorpus(t, "a b a b a c")

	if _, err := runApp(t, "export", "--corpus", path, "--format", "yaml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestCommandsRequireCorpus(t *testing.T) {
	corpusPath = ""
	if _, err := runApp(t, "top"); err == nil {
		t.Fatalf("expected error without --corpus")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "version")
	if err != nil {
		t.Fatalf("version returned error: %v", err)
	}
	if !strings.HasPrefix(out, "version:") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestSnapshotFeedsGenerateAndScore(t *testing.T) {
	path := writeCorpus(t, "a b a b a c a")
	snap := filepath.Join(t.TempDir(), "model.json")

	if out, err := runApp(t, "export", "--corpus", path, "--max-order", "2", "--out", snap); err != nil {
		t.Fatalf("export returned error: %v\n%s", err, out)
	}

	fromCorpus, err := runApp(t, "generate", "--corpus", path, "--order", "2", "--seed", "5", "--length", "15")
	if err != nil {
		t.Fatalf("generate from corpus returned error: %v\n%s", err, fromCorpus)
	}
	corpusPath = ""
	fromSnapshot, err := runApp(t, "generate", "--snapshot", snap, "--order", "2", "--seed", "5", "--length", "15")
	if err != nil {
		t.Fatalf("generate from snapshot returned error: %v\n%s", err, fromSnapshot)
	}
	if fromCorpus != fromSnapshot {
		t.Fatalf("snapshot changed generation:\n%q\n%q", fromCorpus, fromSnapshot)
	}

	eval := writeCorpus(t, "a b a c")
	out, err := runApp(t, "score", "--snapshot", snap, "--eval", eval)
	if err != nil {
		t.Fatalf("score from snapshot returned error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "bigram") || strings.Contains(out, "trigram") {
		t.Fatalf("score should cover the snapshot's orders only:\n%s", out)
	}
}

func TestSnapshotOrderBeyondModel(t *testing.T) {
	path := writeCorpus(t, "a b a b a c a")
	snap := filepath.Join(t.TempDir(), "model.json")
	if out, err := runApp(t, "export", "--corpus", path, "--max-order", "2", "--out", snap); err != nil {
		t.Fatalf("export returned error: %v\n%s", err, out)
	}

	if _, err := runApp(t, "generate", "--snapshot", snap, "--order", "3"); err == nil {
		t.Fatalf("expected error for an order the snapshot does not hold")
	}
	if _, err := runApp(t, "generate", "--snapshot", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for a missing snapshot")
	}
}
