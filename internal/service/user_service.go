package service

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"todo-service/internal/entity"
	"todo-service/internal/notify"
	"todo-service/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const MinPasswordLength = 6

var (
	ErrInvalidInput       = errors.New("username and password are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// dummyHash is compared against when the username does not exist, so an
// unknown user costs the same as a wrong password and login timing does
// not leak which usernames are registered.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type UserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id int) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	SetTelegramChatID(ctx context.Context, userID int, chatID *int64) error
}

type UserService struct {
	repo   UserRepository
	sender notify.Sender
}

// NewUserService creates a new instance of UserService. sender may be nil
// when no telegram bot is configured.
func NewUserService(repo UserRepository, sender notify.Sender) *UserService {
	return &UserService{repo: repo, sender: sender}
}

// Register validates the credentials, hashes the password and persists the
// user. The username uniqueness check is the insert itself, no read-first.
func (s *UserService) Register(ctx context.Context, username, password string) (*entity.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, &entity.User{Username: username, PasswordHash: string(hash)})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrDuplicateUsername
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	return user, nil
}

// Authenticate returns the user for a correct username/password pair.
// Unknown username and wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching user for login")
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting user by ID %d", id)
		return nil, err
	}

	return user, nil
}

// BindTelegram stores the chat id and sends a confirmation message.
// The confirmation is best-effort; a delivery failure does not fail the bind.
func (s *UserService) BindTelegram(ctx context.Context, userID int, chatID int64) error {
	if err := s.repo.SetTelegramChatID(ctx, userID, &chatID); err != nil {
		logger.Error().Err(err).Int("user_id", userID).Msg("Error binding telegram chat")
		return err
	}

	if s.sender != nil {
		if err := s.sender.SendText(ctx, chatID, "Telegram notifications enabled for your todo list."); err != nil {
			logger.Warn().Err(err).Int("user_id", userID).Msg("Bind confirmation not delivered")
		}
	}

	return nil
}

// UnbindTelegram clears the binding. When the user had a chat bound, a
// goodbye message is attempted on that chat; when already unbound it is a
// no-op and nothing is sent.
func (s *UserService) UnbindTelegram(ctx context.Context, userID int) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TelegramChatID == nil {
		return nil
	}
	chatID := *user.TelegramChatID

	if err := s.repo.SetTelegramChatID(ctx, userID, nil); err != nil {
		logger.Error().Err(err).Int("user_id", userID).Msg("Error unbinding telegram chat")
		return err
	}

	if s.sender != nil {
		if err := s.sender.SendText(ctx, chatID, "Telegram notifications disabled."); err != nil {
			logger.Warn().Err(err).Int("user_id", userID).Msg("Unbind confirmation not delivered")
		}
	}

	return nil
}
