package main

import (
	"bytes"
	"chattermind/config"
	"chattermind/models"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"
)

var (
	cfg         *config.Config
	logger      *slog.Logger
	logLevel    = new(slog.LevelVar)
	ctx, cancel = context.WithCancel(context.Background())

	client     *BackendClient
	ctrl       *Controller
	orator     Orator
	asr        STT
	authedUser *models.User
)

// ChatClient is the remote collaborator owning persistence and the
// actual language model. Every chat call answers with the user's full
// stored history; the newest assistant turn is its last element and
// that is the only element Submit consumes.
type ChatClient interface {
	SendChatRequest(ctx context.Context, message string) ([]models.RoleMsg, error)
	GetUserChats(ctx context.Context) ([]models.RoleMsg, error)
	DeleteUserChats(ctx context.Context) error
	AuthStatus(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Signup(ctx context.Context, name, email, password string) (*models.User, error)
}

type BackendClient struct {
	base       string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewBackendClient(cfg *config.Config, logger *slog.Logger) *BackendClient {
	return &BackendClient{
		base:       cfg.BackendURL,
		token:      cfg.APIToken,
		httpClient: createClient(time.Second * 15),
		logger:     logger,
	}
}

func createClient(connectTimeout time.Duration) *http.Client {
	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{
				Timeout:   connectTimeout,
				KeepAlive: 30 * time.Second,
			}
			return dialer.DialContext(ctx, network, addr)
		},
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: connectTimeout,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   time.Minute * 2,
	}
}

func (bc *BackendClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, bc.base+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if bc.token != "" {
		req.Header.Set("Authorization", "Bearer "+bc.token)
	}
	resp, err := bc.httpClient.Do(req)
	if err != nil {
		bc.logger.Error("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		bc.logger.Error("backend answered with an error",
			"method", method, "path", path, "status", resp.StatusCode)
		errResp := models.ErrResp{}
		if json.Unmarshal(data, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("backend error: %s (status %d)", errResp.Message, resp.StatusCode)
		}
		return fmt.Errorf("backend status %d: %s", resp.StatusCode, string(data))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (bc *BackendClient) SendChatRequest(ctx context.Context, message string) ([]models.RoleMsg, error) {
	resp := models.ChatsResp{}
	err := bc.doJSON(ctx, http.MethodPost, "/chat/new", models.ChatReq{Message: message}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Chats, nil
}

func (bc *BackendClient) GetUserChats(ctx context.Context) ([]models.RoleMsg, error) {
	resp := models.ChatsResp{}
	if err := bc.doJSON(ctx, http.MethodGet, "/chat/all-chats", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Chats, nil
}

func (bc *BackendClient) DeleteUserChats(ctx context.Context) error {
	return bc.doJSON(ctx, http.MethodDelete, "/chat/delete", nil, nil)
}

func (bc *BackendClient) AuthStatus(ctx context.Context) (*models.User, error) {
	resp := models.AuthResp{}
	if err := bc.doJSON(ctx, http.MethodGet, "/user/auth-status", nil, &resp); err != nil {
		return nil, err
	}
	return &models.User{Name: resp.Name, Email: resp.Email}, nil
}

func (bc *BackendClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp := models.AuthResp{}
	err := bc.doJSON(ctx, http.MethodPost, "/user/login",
		models.LoginReq{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	bc.token = resp.Token
	return &models.User{Name: resp.Name, Email: resp.Email}, nil
}

func (bc *BackendClient) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	resp := models.AuthResp{}
	err := bc.doJSON(ctx, http.MethodPost, "/user/signup",
		models.SignupReq{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	bc.token = resp.Token
	return &models.User{Name: resp.Name, Email: resp.Email}, nil
}

func init() {
	var cfgErr error
	cfg, cfgErr = config.LoadConfigOrDefault(os.Getenv("CHATTERMIND_CONFIG"))
	logfile, err := os.OpenFile(cfg.LogFile,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		slog.Error("failed to open log file", "error", err, "filename", cfg.LogFile)
		cancel()
		os.Exit(1)
		return
	}
	logLevel.Set(slog.LevelInfo)
	logger = slog.New(slog.NewTextHandler(logfile, &slog.HandlerOptions{Level: logLevel}))
	if cfgErr != nil {
		logger.Warn("no config file; using defaults", "error", cfgErr)
	}
	client = NewBackendClient(cfg, logger)
	if cfg.TTS_ENABLED {
		orator = NewOrator(logger, cfg)
	}
	ctrl = NewController(client, orator, logger, func(topic, message string) {
		showNotice(topic, message)
		if err := notifyUser(topic, message); err != nil {
			logger.Debug("failed to notify user", "error", err)
		}
	}, refreshChatView)
	ctrl.SetVoiceFeedback(cfg.TTS_ENABLED)
	if cfg.APIToken != "" {
		if user, err := client.AuthStatus(ctx); err == nil {
			authedUser = user
			ctrl.SetUser(user)
		} else {
			logger.Warn("auth status check failed", "error", err)
		}
	}
}
