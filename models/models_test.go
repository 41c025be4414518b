package models

import (
	"strings"
	"testing"
)

func TestLastAssistant(t *testing.T) {
	tests := []struct {
		name     string
		chats    []RoleMsg
		expected string
		found    bool
	}{
		{
			name: "reply is the last element",
			chats: []RoleMsg{
				{Role: RoleUser, Content: "hello"},
				{Role: RoleAssistant, Content: "Hi there!"},
			},
			expected: "Hi there!",
			found:    true,
		},
		{
			name: "newest assistant turn wins",
			chats: []RoleMsg{
				{Role: RoleUser, Content: "one"},
				{Role: RoleAssistant, Content: "first"},
				{Role: RoleUser, Content: "two"},
				{Role: RoleAssistant, Content: "second"},
			},
			expected: "second",
			found:    true,
		},
		{
			name: "trailing user turn is skipped",
			chats: []RoleMsg{
				{Role: RoleAssistant, Content: "answer"},
				{Role: RoleUser, Content: "question"},
			},
			expected: "answer",
			found:    true,
		},
		{
			name:  "no assistant turn at all",
			chats: []RoleMsg{{Role: RoleUser, Content: "hello"}},
			found: false,
		},
		{
			name:  "empty history",
			chats: nil,
			found: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ChatsResp{Chats: tt.chats}
			msg, ok := resp.LastAssistant()
			if ok != tt.found {
				t.Fatalf("found = %v, expected %v", ok, tt.found)
			}
			if ok && msg.Content != tt.expected {
				t.Fatalf("content = %q, expected %q", msg.Content, tt.expected)
			}
		})
	}
}

func TestRoleMsgToText(t *testing.T) {
	m := RoleMsg{Role: RoleUser, Content: "hello"}
	text := m.ToText(3)
	if !strings.Contains(text, "(3) <user>:") {
		t.Fatalf("missing index and role marker: %q", text)
	}
	if !strings.Contains(text, "hello") {
		t.Fatalf("missing content: %q", text)
	}
}
