package main

import (
	"chattermind/models"
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Controller owns the in-memory conversation shown by the view. The
// backend remains the source of truth; the controller only mirrors it
// and appends optimistically while a request is in flight.
type Controller struct {
	mu            sync.Mutex
	client        ChatClient
	orator        Orator
	logger        *slog.Logger
	notify        func(topic, message string)
	redraw        func()
	messages      []models.RoleMsg
	loading       bool
	voiceFeedback bool
	user          *models.User
}

func NewController(client ChatClient, orator Orator, logger *slog.Logger,
	notify func(topic, message string), redraw func(),
) *Controller {
	if notify == nil {
		notify = func(topic, message string) {}
	}
	if redraw == nil {
		redraw = func() {}
	}
	return &Controller{
		client: client,
		orator: orator,
		logger: logger,
		notify: notify,
		redraw: redraw,
	}
}

func (c *Controller) Messages() []models.RoleMsg {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.RoleMsg, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) VoiceFeedback() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.voiceFeedback
}

// SetVoiceFeedback toggles reading replies aloud. Turning it off also
// cuts any reply currently being spoken.
func (c *Controller) SetVoiceFeedback(on bool) {
	c.mu.Lock()
	c.voiceFeedback = on && c.orator != nil
	orator := c.orator
	c.mu.Unlock()
	if !on && orator != nil {
		orator.Stop()
	}
}

func (c *Controller) ToggleVoiceFeedback() bool {
	c.SetVoiceFeedback(!c.VoiceFeedback())
	return c.VoiceFeedback()
}

func (c *Controller) SetUser(u *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = u
}

func (c *Controller) User() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// Submit sends one user turn to the backend. Blank input is dropped
// without any request. While a reply is pending further submissions
// are refused, so the history can never interleave. On success exactly
// two messages join the conversation, the user's turn then the reply;
// on failure the user's turn stays and the user is notified.
func (c *Controller) Submit(ctx context.Context, text string) {
	msg := strings.TrimSpace(text)
	if msg == "" {
		return
	}
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		c.notify("chat", "still waiting on the previous reply")
		return
	}
	c.loading = true
	c.messages = append(c.messages, models.RoleMsg{Role: models.RoleUser, Content: msg})
	c.mu.Unlock()
	c.redraw()
	chats, err := c.client.SendChatRequest(ctx, msg)
	if err != nil {
		c.logger.Error("chat request failed", "error", err)
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
		c.notify("chat", "failed to reach backend: "+err.Error())
		c.redraw()
		return
	}
	resp := models.ChatsResp{Chats: chats}
	reply, ok := resp.LastAssistant()
	c.mu.Lock()
	c.loading = false
	if !ok {
		c.mu.Unlock()
		c.logger.Error("backend answered without an assistant turn", "msg_count", len(chats))
		c.notify("chat", "backend sent no reply")
		c.redraw()
		return
	}
	c.messages = append(c.messages, reply)
	speak := c.voiceFeedback && c.orator != nil
	orator := c.orator
	c.mu.Unlock()
	c.redraw()
	if speak {
		if err := orator.Speak(reply.Content); err != nil {
			c.logger.Warn("failed to speak reply", "error", err)
		}
	}
}

// LoadHistory replaces the local conversation with the backend's
// stored copy. On failure the local copy is kept untouched. The
// loading notice transitions to a success or failure one; a newer
// operation's notice simply replaces it.
func (c *Controller) LoadHistory(ctx context.Context) error {
	c.notify("chat", "loading history...")
	chats, err := c.client.GetUserChats(ctx)
	if err != nil {
		c.logger.Error("failed to load chat history", "error", err)
		c.notify("chat", "failed to load history: "+err.Error())
		return err
	}
	c.mu.Lock()
	c.messages = chats
	c.mu.Unlock()
	c.notify("chat", "history loaded")
	c.redraw()
	return nil
}

// ClearHistory wipes the stored conversation. The local copy is
// cleared only once the backend confirms the delete.
func (c *Controller) ClearHistory(ctx context.Context) error {
	c.notify("chat", "clearing history...")
	if err := c.client.DeleteUserChats(ctx); err != nil {
		c.logger.Error("failed to clear chat history", "error", err)
		c.notify("chat", "failed to clear history: "+err.Error())
		return err
	}
	c.mu.Lock()
	c.messages = nil
	c.mu.Unlock()
	c.notify("chat", "history cleared")
	c.redraw()
	return nil
}
