package extra

import (
	"strings"
	"testing"
)

func TestSpeakableText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello world", "Hello world"},
		{"**Bold text**", "Bold text"},
		{"*Italic text*", "Italic text"},
		{"# Header", "Header"},
		{"[Link text](http://example.com)", "Link text"},
		{"plain `inline code` gone", "plain gone"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SpeakableText(tt.input); got != tt.expected {
			t.Errorf("SpeakableText(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestSpeakableTextDropsCodeBlocks(t *testing.T) {
	md := "Run this:\n\n```\nrm -rf /tmp/cache\n```\n\nand you are done."
	got := SpeakableText(md)
	if strings.Contains(got, "rm -rf") {
		t.Fatalf("code block leaked into speech: %q", got)
	}
	if !strings.Contains(got, "you are done") {
		t.Fatalf("prose lost: %q", got)
	}
}

func TestSpeakableTextCollapsesWhitespace(t *testing.T) {
	md := "line one\n\nline   two\n\n- item a\n- item b"
	got := SpeakableText(md)
	if strings.Contains(got, "\n") || strings.Contains(got, "  ") {
		t.Fatalf("whitespace not collapsed: %q", got)
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First one. Second one! Is this the third?")
	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %v", got)
	}
	if got[0] != "First one." {
		t.Fatalf("unexpected first sentence: %q", got[0])
	}
}

func TestSplitSentencesEmpty(t *testing.T) {
	if got := SplitSentences(""); len(got) != 0 {
		t.Fatalf("expected no sentences, got %v", got)
	}
}
