package models

import (
	"fmt"
	"strings"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// RoleMsg is one turn of the conversation, tagged with its speaker role.
// Immutable once created; the conversation is append-only.
type RoleMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (m RoleMsg) ToText(i int) string {
	icon := fmt.Sprintf("(%d) <%s>: ", i, m.Role)
	textMsg := fmt.Sprintf("[-:-:b]%s[-:-:-]\n%s\n", icon, m.Content)
	return strings.ReplaceAll(textMsg, "\n\n", "\n")
}

// ChatsResp is the payload every chat endpoint of the backend answers
// with: the user's full stored history, newest turn last.
type ChatsResp struct {
	Chats []RoleMsg `json:"chats"`
}

// LastAssistant returns the newest assistant turn, relying on the
// backend contract that the history ends with it.
func (cr *ChatsResp) LastAssistant() (RoleMsg, bool) {
	for i := len(cr.Chats) - 1; i >= 0; i-- {
		if cr.Chats[i].Role == RoleAssistant {
			return cr.Chats[i], true
		}
	}
	return RoleMsg{}, false
}

type ChatReq struct {
	Message string `json:"message"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResp struct {
	Message string `json:"message"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Token   string `json:"token,omitempty"`
}

type ErrResp struct {
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

// VoiceOption is one synthesis voice the speech output adapter can bind
// an utterance to.
type VoiceOption struct {
	Name string `json:"name"`
	Lang string `json:"lang"`
}

// request body for an OpenAI-compatible chat completion endpoint
type ChatBody struct {
	Model    string    `json:"model"`
	Stream   bool      `json:"stream"`
	Messages []RoleMsg `json:"messages"`
}

type LLMResp struct {
	Choices []struct {
		FinishReason string `json:"finish_reason"`
		Index        int    `json:"index"`
		Message      struct {
			Content string `json:"content"`
			Role    string `json:"role"`
		} `json:"message"`
	} `json:"choices"`
	Created int    `json:"created"`
	Model   string `json:"model"`
	Object  string `json:"object"`
	Usage   struct {
		CompletionTokens int `json:"completion_tokens"`
		PromptTokens     int `json:"prompt_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	ID string `json:"id"`
}
