package storage

import (
	"chattermind/models"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

type UserRepo interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
}

type ChatRepo interface {
	GetUserChats(userID int64) ([]models.RoleMsg, error)
	ReplaceUserChats(userID int64, msgs []models.RoleMsg) error
	DeleteUserChats(userID int64) error
}

type FullRepo interface {
	UserRepo
	ChatRepo
}

type ProviderSQL struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewProviderSQL(dbPath string, logger *slog.Logger) FullRepo {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		logger.Error("failed to open sqlite", "error", err, "path", dbPath)
		return nil
	}
	p := ProviderSQL{db: db, logger: logger}
	p.Migrate()
	return p
}

func (p ProviderSQL) CreateUser(user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	query := `
        INSERT INTO users (name, email, password, created_at)
        VALUES (:name, :email, :password, :created_at)
        RETURNING *;`
	stmt, err := p.db.PrepareNamed(query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()
	var resp models.User
	err = stmt.Get(&resp, user)
	return &resp, err
}

func (p ProviderSQL) GetUserByEmail(email string) (*models.User, error) {
	resp := models.User{}
	err := p.db.Get(&resp, "SELECT * FROM users WHERE email=$1;", email)
	return &resp, err
}

func (p ProviderSQL) GetUserByID(id int64) (*models.User, error) {
	resp := models.User{}
	err := p.db.Get(&resp, "SELECT * FROM users WHERE id=$1;", id)
	return &resp, err
}

func (p ProviderSQL) GetUserChats(userID int64) ([]models.RoleMsg, error) {
	row := models.UserChats{}
	err := p.db.Get(&row, "SELECT * FROM user_chats WHERE user_id=$1;", userID)
	if errors.Is(err, sql.ErrNoRows) {
		// a user with no stored chats yet
		return []models.RoleMsg{}, nil
	}
	if err != nil {
		return nil, err
	}
	msgs := []models.RoleMsg{}
	if err := json.Unmarshal([]byte(row.Msgs), &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode stored chats: %w", err)
	}
	return msgs, nil
}

func (p ProviderSQL) ReplaceUserChats(userID int64, msgs []models.RoleMsg) error {
	data, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("failed to encode chats: %w", err)
	}
	row := &models.UserChats{
		UserID:    userID,
		Msgs:      string(data),
		UpdatedAt: time.Now(),
	}
	query := `
        INSERT OR REPLACE INTO user_chats (user_id, msgs, updated_at)
        VALUES (:user_id, :msgs, :updated_at);`
	_, err = p.db.NamedExec(query, row)
	return err
}

func (p ProviderSQL) DeleteUserChats(userID int64) error {
	_, err := p.db.Exec("DELETE FROM user_chats WHERE user_id = $1;", userID)
	return err
}
