package main

import (
	"strings"
	"testing"

	"chattermind/models"
)

func TestMakeStatusLineSpeaking(t *testing.T) {
	oldOrator := orator
	defer func() { orator = oldOrator }()
	orator = &fakeOrator{speakingNow: true}
	if line := makeStatusLine(); !strings.Contains(line, "speaking: true") {
		t.Fatalf("status line must show an utterance in flight: %q", line)
	}
	orator = &fakeOrator{}
	if line := makeStatusLine(); !strings.Contains(line, "speaking: false") {
		t.Fatalf("status line must show silence after stop: %q", line)
	}
}

func TestChatToText(t *testing.T) {
	msgs := []models.RoleMsg{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "Hi there!"},
	}
	text := chatToText(msgs)
	if !strings.Contains(text, "(0) <user>:") || !strings.Contains(text, "(1) <assistant>:") {
		t.Fatalf("messages must render in arrival order: %q", text)
	}
	if strings.Index(text, "hello") > strings.Index(text, "Hi there!") {
		t.Fatalf("render order broken: %q", text)
	}
}
