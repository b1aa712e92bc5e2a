package service_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"todo-service/internal/entity"
	"todo-service/internal/repository"
	"todo-service/internal/service"
)

type fakeUserRepo struct {
	users  map[int]*entity.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*entity.User)}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, repository.ErrDuplicate
		}
	}
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.ID] = &copied
	return user, nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) SetTelegramChatID(ctx context.Context, userID int, chatID *int64) error {
	if u, ok := r.users[userID]; ok {
		u.TelegramChatID = chatID
	}
	return nil
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeSender struct {
	sent []sentMessage
	err  error
}

func (s *fakeSender) SendText(ctx context.Context, chatID int64, text string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMessage{chatID, text})
	return nil
}

func TestRegister_Validation(t *testing.T) {
	svc := service.NewUserService(newFakeUserRepo(), nil)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"empty username", "", "secret1", service.ErrInvalidInput},
		{"empty password", "alice", "", service.ErrInvalidInput},
		{"short password", "alice", "12345", service.ErrPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.password)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewUserService(repo, nil)

	user, err := svc.Register(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	stored := repo.users[user.ID]
	if stored.PasswordHash == "secret1" {
		t.Fatal("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")) != nil {
		t.Fatal("stored hash does not verify against the password")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc := service.NewUserService(newFakeUserRepo(), nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "alice", "another1")
	if !errors.Is(err, service.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := service.NewUserService(newFakeUserRepo(), nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Authenticate(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	// Wrong password and unknown username return the same error, so a
	// caller cannot probe which usernames exist.
	_, wrongPass := svc.Authenticate(ctx, "alice", "wrong-pass")
	_, unknownUser := svc.Authenticate(ctx, "nobody", "wrong-pass")
	if !errors.Is(wrongPass, service.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknownUser, service.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknownUser)
	}
}

func TestBindTelegram_SendsConfirmation(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &fakeSender{}
	svc := service.NewUserService(repo, sender)
	ctx := context.Background()

	user, _ := svc.Register(ctx, "alice", "secret1")

	if err := svc.BindTelegram(ctx, user.ID, 555); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if repo.users[user.ID].TelegramChatID == nil || *repo.users[user.ID].TelegramChatID != 555 {
		t.Fatal("binding not stored")
	}
	if len(sender.sent) != 1 || sender.sent[0].chatID != 555 {
		t.Fatalf("expected one confirmation to chat 555, got %+v", sender.sent)
	}
}

func TestBindTelegram_SenderFailureDoesNotFailBind(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &fakeSender{err: errors.New("telegram down")}
	svc := service.NewUserService(repo, sender)
	ctx := context.Background()

	user, _ := svc.Register(ctx, "alice", "secret1")

	if err := svc.BindTelegram(ctx, user.ID, 555); err != nil {
		t.Fatalf("bind should swallow delivery failure, got %v", err)
	}
	if repo.users[user.ID].TelegramChatID == nil {
		t.Fatal("binding not stored despite sender failure")
	}
}

func TestUnbindTelegram(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &fakeSender{}
	svc := service.NewUserService(repo, sender)
	ctx := context.Background()

	user, _ := svc.Register(ctx, "alice", "secret1")
	_ = svc.BindTelegram(ctx, user.ID, 555)
	sender.sent = nil

	if err := svc.UnbindTelegram(ctx, user.ID); err != nil {
		t.Fatalf("unbind: %v", err)
	}
	if repo.users[user.ID].TelegramChatID != nil {
		t.Fatal("binding not cleared")
	}
	if len(sender.sent) != 1 || sender.sent[0].chatID != 555 {
		t.Fatalf("expected goodbye message to chat 555, got %+v", sender.sent)
	}

	// Already unbound: no-op, nothing sent.
	sender.sent = nil
	if err := svc.UnbindTelegram(ctx, user.ID); err != nil {
		t.Fatalf("second unbind: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no message on redundant unbind, got %+v", sender.sent)
	}
}
