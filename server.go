package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"chattermind/config"
	"chattermind/models"
	"chattermind/storage"

	"github.com/google/uuid"
)

// Server is the optional built-in backend, the same api the tui client
// talks to. It keeps users and chat history in sqlite and forwards
// each turn to an openai-compatible completion endpoint.
type Server struct {
	config     *config.Config
	logger     *slog.Logger
	store      storage.FullRepo
	httpClient *http.Client
	mu         sync.Mutex
	sessions   map[string]int64 // token -> user id
}

func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	store := storage.NewProviderSQL(cfg.DBPATH, logger)
	if store == nil {
		return nil, errors.New("failed to open db: " + cfg.DBPATH)
	}
	return &Server{
		config:     cfg,
		logger:     logger,
		store:      store,
		httpClient: createClient(time.Second * 15),
		sessions:   map[string]int64{},
	}, nil
}

func (srv *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", srv.pingHandler)
	mux.HandleFunc("POST /api/v1/user/signup", srv.signupHandler)
	mux.HandleFunc("POST /api/v1/user/login", srv.loginHandler)
	mux.HandleFunc("GET /api/v1/user/auth-status", srv.authStatusHandler)
	mux.HandleFunc("POST /api/v1/chat/new", srv.newChatHandler)
	mux.HandleFunc("GET /api/v1/chat/all-chats", srv.allChatsHandler)
	mux.HandleFunc("DELETE /api/v1/chat/delete", srv.deleteChatsHandler)
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  time.Second * 5,
		WriteTimeout: time.Minute * 2,
	}
	fmt.Println("listening", "addr", server.Addr)
	return server.ListenAndServe()
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to write response", "error", err)
	}
}

func writeErr(w http.ResponseWriter, status int, message string, err error) {
	resp := models.ErrResp{Message: message}
	if err != nil {
		resp.Cause = err.Error()
	}
	writeJSON(w, status, resp)
}

// userFromReq resolves the bearer token to a logged-in user.
func (srv *Server) userFromReq(req *http.Request) (*models.User, error) {
	auth := req.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, errors.New("missing bearer token")
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	srv.mu.Lock()
	userID, ok := srv.sessions[token]
	srv.mu.Unlock()
	if !ok {
		return nil, errors.New("unknown or expired session")
	}
	return srv.store.GetUserByID(userID)
}

func (srv *Server) newSession(userID int64) string {
	token := uuid.NewString()
	srv.mu.Lock()
	srv.sessions[token] = userID
	srv.mu.Unlock()
	return token
}

func (srv *Server) pingHandler(w http.ResponseWriter, req *http.Request) {
	if _, err := w.Write([]byte("pong")); err != nil {
		srv.logger.Error("server ping", "error", err)
	}
}

func (srv *Server) signupHandler(w http.ResponseWriter, req *http.Request) {
	payload := models.SignupReq{}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeErr(w, http.StatusBadRequest, "bad signup payload", err)
		return
	}
	if payload.Email == "" || payload.Password == "" {
		writeErr(w, http.StatusBadRequest, "email and password are required", nil)
		return
	}
	if payload.Name == "" {
		payload.Name = strings.SplitN(payload.Email, "@", 2)[0]
	}
	user, err := srv.store.CreateUser(&models.User{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: hashPassword(payload.Password),
	})
	if err != nil {
		srv.logger.Error("failed to create user", "email", payload.Email, "error", err)
		writeErr(w, http.StatusConflict, "failed to create user", err)
		return
	}
	token := srv.newSession(user.ID)
	writeJSON(w, http.StatusCreated, models.AuthResp{
		Message: "signed up",
		Name:    user.Name,
		Email:   user.Email,
		Token:   token,
	})
}

func (srv *Server) loginHandler(w http.ResponseWriter, req *http.Request) {
	payload := models.LoginReq{}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeErr(w, http.StatusBadRequest, "bad login payload", err)
		return
	}
	user, err := srv.store.GetUserByEmail(payload.Email)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "wrong email or password", nil)
		return
	}
	if user.Password != hashPassword(payload.Password) {
		writeErr(w, http.StatusUnauthorized, "wrong email or password", nil)
		return
	}
	token := srv.newSession(user.ID)
	writeJSON(w, http.StatusOK, models.AuthResp{
		Message: "logged in",
		Name:    user.Name,
		Email:   user.Email,
		Token:   token,
	})
}

func (srv *Server) authStatusHandler(w http.ResponseWriter, req *http.Request) {
	user, err := srv.userFromReq(req)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "not logged in", err)
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResp{
		Message: "logged in",
		Name:    user.Name,
		Email:   user.Email,
	})
}

func (srv *Server) allChatsHandler(w http.ResponseWriter, req *http.Request) {
	user, err := srv.userFromReq(req)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "not logged in", err)
		return
	}
	msgs, err := srv.store.GetUserChats(user.ID)
	if err != nil {
		srv.logger.Error("failed to load chats", "user", user.ID, "error", err)
		writeErr(w, http.StatusInternalServerError, "failed to load chats", err)
		return
	}
	writeJSON(w, http.StatusOK, models.ChatsResp{Chats: msgs})
}

func (srv *Server) deleteChatsHandler(w http.ResponseWriter, req *http.Request) {
	user, err := srv.userFromReq(req)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "not logged in", err)
		return
	}
	if err := srv.store.DeleteUserChats(user.ID); err != nil {
		srv.logger.Error("failed to delete chats", "user", user.ID, "error", err)
		writeErr(w, http.StatusInternalServerError, "failed to delete chats", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "chats deleted"})
}

// newChatHandler appends the user's turn, asks the llm for a reply,
// stores both and answers with the whole history, reply last.
func (srv *Server) newChatHandler(w http.ResponseWriter, req *http.Request) {
	user, err := srv.userFromReq(req)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "not logged in", err)
		return
	}
	payload := models.ChatReq{}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeErr(w, http.StatusBadRequest, "bad chat payload", err)
		return
	}
	msg := strings.TrimSpace(payload.Message)
	if msg == "" {
		writeErr(w, http.StatusBadRequest, "message can't be empty", nil)
		return
	}
	history, err := srv.store.GetUserChats(user.ID)
	if err != nil {
		srv.logger.Error("failed to load chats", "user", user.ID, "error", err)
		writeErr(w, http.StatusInternalServerError, "failed to load chats", err)
		return
	}
	history = append(history, models.RoleMsg{Role: models.RoleUser, Content: msg})
	reply, err := srv.callLLM(history)
	if err != nil {
		srv.logger.Error("llm call failed", "error", err)
		writeErr(w, http.StatusBadGateway, "language model unavailable", err)
		return
	}
	history = append(history, models.RoleMsg{Role: models.RoleAssistant, Content: reply})
	if err := srv.store.ReplaceUserChats(user.ID, history); err != nil {
		srv.logger.Error("failed to store chats", "user", user.ID, "error", err)
		writeErr(w, http.StatusInternalServerError, "failed to store chats", err)
		return
	}
	writeJSON(w, http.StatusOK, models.ChatsResp{Chats: history})
}

func (srv *Server) callLLM(history []models.RoleMsg) (string, error) {
	msgs := make([]models.RoleMsg, 0, len(history)+1)
	msgs = append(msgs, models.RoleMsg{Role: models.RoleSystem, Content: srv.config.SysMsg})
	msgs = append(msgs, history...)
	body := models.ChatBody{
		Model:    srv.config.LLMModel,
		Stream:   false,
		Messages: msgs,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal llm request: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, srv.config.LLMAPI, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create llm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("llm status %d: %s", resp.StatusCode, string(data))
	}
	llmResp := models.LLMResp{}
	if err := json.NewDecoder(resp.Body).Decode(&llmResp); err != nil {
		return "", fmt.Errorf("failed to decode llm response: %w", err)
	}
	if len(llmResp.Choices) == 0 {
		return "", errors.New("llm answered with no choices")
	}
	return llmResp.Choices[0].Message.Content, nil
}
