package main

import (
	"chattermind/models"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

type fakeClient struct {
	mu      sync.Mutex
	sent    []string
	chats   []models.RoleMsg
	sendErr error
	getErr  error
	delErr  error
	deleted int
	started chan struct{}
	block   chan struct{}
}

func (fc *fakeClient) SendChatRequest(ctx context.Context, message string) ([]models.RoleMsg, error) {
	fc.mu.Lock()
	fc.sent = append(fc.sent, message)
	fc.mu.Unlock()
	if fc.started != nil {
		fc.started <- struct{}{}
	}
	if fc.block != nil {
		<-fc.block
	}
	if fc.sendErr != nil {
		return nil, fc.sendErr
	}
	return fc.chats, nil
}

func (fc *fakeClient) GetUserChats(ctx context.Context) ([]models.RoleMsg, error) {
	if fc.getErr != nil {
		return nil, fc.getErr
	}
	return fc.chats, nil
}

func (fc *fakeClient) DeleteUserChats(ctx context.Context) error {
	if fc.delErr != nil {
		return fc.delErr
	}
	fc.mu.Lock()
	fc.deleted++
	fc.mu.Unlock()
	return nil
}

func (fc *fakeClient) AuthStatus(ctx context.Context) (*models.User, error) {
	return &models.User{Name: "tester", Email: "t@t.t"}, nil
}

func (fc *fakeClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	return &models.User{Name: "tester", Email: email}, nil
}

func (fc *fakeClient) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	return &models.User{Name: name, Email: email}, nil
}

type fakeOrator struct {
	mu          sync.Mutex
	spoken      []string
	stops       int
	speakingNow bool
}

func (fo *fakeOrator) Speak(text string) error {
	fo.mu.Lock()
	defer fo.mu.Unlock()
	fo.spoken = append(fo.spoken, text)
	return nil
}

func (fo *fakeOrator) Stop() {
	fo.mu.Lock()
	defer fo.mu.Unlock()
	fo.stops++
}

func (fo *fakeOrator) Speaking() bool {
	fo.mu.Lock()
	defer fo.mu.Unlock()
	return fo.speakingNow
}
func (fo *fakeOrator) Voices() []models.VoiceOption             { return nil }
func (fo *fakeOrator) SelectVoice(name string) error            { return nil }
func (fo *fakeOrator) CurrentVoice() (models.VoiceOption, bool) { return models.VoiceOption{}, false }
func (fo *fakeOrator) RefreshVoices()                           {}

func testController(fc *fakeClient, fo Orator) (*Controller, *[]string) {
	notices := &[]string{}
	var mu sync.Mutex
	c := NewController(fc, fo,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		func(topic, message string) {
			mu.Lock()
			*notices = append(*notices, topic+": "+message)
			mu.Unlock()
		}, nil)
	return c, notices
}

func TestSubmitBlankInput(t *testing.T) {
	fc := &fakeClient{}
	c, notices := testController(fc, nil)
	for _, input := range []string{"", "   ", "\n\t "} {
		c.Submit(context.Background(), input)
	}
	if len(fc.sent) != 0 {
		t.Fatalf("expected no requests for blank input, got %v", fc.sent)
	}
	if len(c.Messages()) != 0 {
		t.Fatalf("expected no messages, got %v", c.Messages())
	}
	if len(*notices) != 0 {
		t.Fatalf("expected no notifications, got %v", *notices)
	}
}

func TestSubmitSuccess(t *testing.T) {
	fc := &fakeClient{chats: []models.RoleMsg{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "Hi there!"},
	}}
	fo := &fakeOrator{}
	c, _ := testController(fc, fo)
	c.SetVoiceFeedback(true)
	c.Submit(context.Background(), "hello")
	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d: %v", len(msgs), msgs)
	}
	if msgs[0].Role != "user" || msgs[0].Content != "hello" {
		t.Fatalf("unexpected first message: %v", msgs[0])
	}
	if msgs[1].Role != "assistant" || msgs[1].Content != "Hi there!" {
		t.Fatalf("unexpected second message: %v", msgs[1])
	}
	if c.Loading() {
		t.Fatal("controller still loading after reply")
	}
	if len(fo.spoken) != 1 || fo.spoken[0] != "Hi there!" {
		t.Fatalf("expected reply spoken once, got %v", fo.spoken)
	}
}

func TestSubmitTrimsInput(t *testing.T) {
	fc := &fakeClient{chats: []models.RoleMsg{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}}
	c, _ := testController(fc, nil)
	c.Submit(context.Background(), "  hi  \n")
	if len(fc.sent) != 1 || fc.sent[0] != "hi" {
		t.Fatalf("expected trimmed message sent, got %v", fc.sent)
	}
}

func TestSubmitFailureKeepsUserTurn(t *testing.T) {
	fc := &fakeClient{sendErr: errors.New("connection refused")}
	c, notices := testController(fc, nil)
	c.Submit(context.Background(), "hello")
	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0].Content != "hello" {
		t.Fatalf("expected only the user turn kept, got %v", msgs)
	}
	if c.Loading() {
		t.Fatal("loading flag stuck after failure")
	}
	if len(*notices) != 1 {
		t.Fatalf("expected one notification, got %v", *notices)
	}
}

func TestSubmitNoAssistantReply(t *testing.T) {
	fc := &fakeClient{chats: []models.RoleMsg{
		{Role: "user", Content: "hello"},
	}}
	c, notices := testController(fc, nil)
	c.Submit(context.Background(), "hello")
	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected only the user turn, got %v", msgs)
	}
	if len(*notices) != 1 {
		t.Fatalf("expected one notification, got %v", *notices)
	}
}

func TestSubmitRefusedWhileLoading(t *testing.T) {
	fc := &fakeClient{
		chats:   []models.RoleMsg{{Role: "assistant", Content: "ok"}},
		started: make(chan struct{}),
		block:   make(chan struct{}),
	}
	c, notices := testController(fc, nil)
	done := make(chan struct{})
	go func() {
		c.Submit(context.Background(), "first")
		close(done)
	}()
	<-fc.started
	c.Submit(context.Background(), "second")
	if len(fc.sent) != 1 {
		t.Fatalf("second submit should not reach the backend, sent: %v", fc.sent)
	}
	if len(*notices) != 1 || !strings.Contains((*notices)[0], "waiting") {
		t.Fatalf("expected a waiting notification, got %v", *notices)
	}
	close(fc.block)
	<-done
	if c.Loading() {
		t.Fatal("loading flag stuck")
	}
}

func TestSubmitSilentWhenVoiceFeedbackOff(t *testing.T) {
	fc := &fakeClient{chats: []models.RoleMsg{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "Hi there!"},
	}}
	fo := &fakeOrator{}
	c, _ := testController(fc, fo)
	c.Submit(context.Background(), "hello")
	if len(fo.spoken) != 0 {
		t.Fatalf("expected nothing spoken with feedback off, got %v", fo.spoken)
	}
}

func TestVoiceFeedbackNeedsOrator(t *testing.T) {
	fc := &fakeClient{}
	c, _ := testController(fc, nil)
	c.SetVoiceFeedback(true)
	if c.VoiceFeedback() {
		t.Fatal("voice feedback must stay off without an orator")
	}
}

func TestVoiceFeedbackOffStopsSpeaking(t *testing.T) {
	fo := &fakeOrator{}
	c, _ := testController(&fakeClient{}, fo)
	c.SetVoiceFeedback(true)
	c.SetVoiceFeedback(false)
	if fo.stops != 1 {
		t.Fatalf("expected one stop call, got %d", fo.stops)
	}
}

func TestLoadHistory(t *testing.T) {
	history := []models.RoleMsg{
		{Role: "user", Content: "old question"},
		{Role: "assistant", Content: "old answer"},
	}
	fc := &fakeClient{chats: history}
	c, notices := testController(fc, nil)
	if err := c.LoadHistory(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msgs := c.Messages()
	if len(msgs) != 2 || msgs[1].Content != "old answer" {
		t.Fatalf("history not loaded: %v", msgs)
	}
	// the loading notice transitions to a success one
	if len(*notices) != 2 {
		t.Fatalf("expected loading and success notices, got %v", *notices)
	}
	if !strings.Contains((*notices)[0], "loading") || !strings.Contains((*notices)[1], "loaded") {
		t.Fatalf("unexpected notices: %v", *notices)
	}
}

func TestLoadHistoryFailureKeepsLocal(t *testing.T) {
	fc := &fakeClient{chats: []models.RoleMsg{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}}
	c, notices := testController(fc, nil)
	c.Submit(context.Background(), "hi")
	fc.getErr = errors.New("boom")
	if err := c.LoadHistory(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if len(c.Messages()) != 2 {
		t.Fatalf("local history must survive a failed reload: %v", c.Messages())
	}
	if len(*notices) != 2 || !strings.Contains((*notices)[1], "failed") {
		t.Fatalf("expected loading then failure notices, got %v", *notices)
	}
}

func TestClearHistory(t *testing.T) {
	fc := &fakeClient{chats: []models.RoleMsg{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}}
	c, notices := testController(fc, nil)
	c.Submit(context.Background(), "hi")
	if err := c.ClearHistory(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Messages()) != 0 {
		t.Fatalf("expected empty history, got %v", c.Messages())
	}
	if fc.deleted != 1 {
		t.Fatalf("expected one delete call, got %d", fc.deleted)
	}
	if len(*notices) != 2 {
		t.Fatalf("expected clearing and success notices, got %v", *notices)
	}
	if !strings.Contains((*notices)[0], "clearing") || !strings.Contains((*notices)[1], "cleared") {
		t.Fatalf("unexpected notices: %v", *notices)
	}
}

func TestClearHistoryFailureKeepsLocal(t *testing.T) {
	fc := &fakeClient{chats: []models.RoleMsg{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}}
	c, notices := testController(fc, nil)
	c.Submit(context.Background(), "hi")
	fc.delErr = errors.New("backend down")
	if err := c.ClearHistory(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if len(c.Messages()) != 2 {
		t.Fatalf("local history must survive a failed clear: %v", c.Messages())
	}
	if len(*notices) != 2 || !strings.Contains((*notices)[1], "failed") {
		t.Fatalf("expected clearing then failure notices, got %v", *notices)
	}
}
