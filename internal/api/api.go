package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"todo-service/internal/repository"
	"todo-service/internal/service"
	"todo-service/internal/session"
)

type Handler struct {
	userService *service.UserService
	itemService *service.ItemService
	sessions    session.Store
	cookieTTL   time.Duration
}

// NewHandler creates a new instance of Handler.
func NewHandler(userService *service.UserService, itemService *service.ItemService, sessions session.Store, cookieTTL time.Duration) *Handler {
	return &Handler{
		userService: userService,
		itemService: itemService,
		sessions:    sessions,
		cookieTTL:   cookieTTL,
	}
}

// RegisterRoutes wires every route of the app onto e.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.IndexPage, h.RequirePage)
	e.GET("/login", h.LoginPage, h.RedirectIfAuthenticated)
	e.GET("/register", h.RegisterPage, h.RedirectIfAuthenticated)

	e.POST("/login", h.Login)
	e.POST("/register", h.Register)
	e.POST("/logout", h.Logout)

	e.POST("/items", h.CreateItem, h.RequireAuth)
	e.PUT("/items/:id", h.UpdateItem, h.RequireAuth)
	e.DELETE("/items/:id", h.DeleteItem, h.RequireAuth)

	e.GET("/api/me", h.Me, h.RequireAuth)
	e.POST("/bind-telegram", h.BindTelegram, h.RequireAuth)
	e.POST("/unbind-telegram", h.UnbindTelegram, h.RequireAuth)
}

// IndexPage renders the caller's todo list --> GET /
func (h *Handler) IndexPage(c echo.Context) error {
	sess := sessionFrom(c)

	items, err := h.itemService.ListItems(c.Request().Context(), sess.UserID)
	if err != nil {
		return fail(c, 500, "Server error")
	}

	return c.Render(200, "index.html", map[string]interface{}{
		"Username": sess.Username,
		"Items":    items,
	})
}

// LoginPage renders the login form --> GET /login
func (h *Handler) LoginPage(c echo.Context) error {
	return c.Render(200, "login.html", nil)
}

// RegisterPage renders the registration form --> GET /register
func (h *Handler) RegisterPage(c echo.Context) error {
	return c.Render(200, "register.html", nil)
}

// Register creates a new account --> POST /register
func (h *Handler) Register(c echo.Context) error {
	creds := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&creds); err != nil {
		return fail(c, 400, "Invalid request payload")
	}

	_, err := h.userService.Register(c.Request().Context(), creds.Username, creds.Password)
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrDuplicateUsername):
		return fail(c, 400, err.Error())
	case err != nil:
		return fail(c, 500, "Server error")
	}

	return ok(c, nil)
}

// Login verifies credentials and issues the session cookie --> POST /login
func (h *Handler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	creds := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&creds); err != nil {
		return fail(c, 400, "Invalid request payload")
	}

	user, err := h.userService.Authenticate(ctx, creds.Username, creds.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return fail(c, 401, "Invalid credentials")
	}
	if err != nil {
		return fail(c, 500, "Server error")
	}

	sess, err := h.sessions.Create(ctx, user.ID, user.Username)
	if err != nil {
		return fail(c, 500, "Server error")
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
	})

	return ok(c, map[string]interface{}{"username": user.Username})
}

// Logout destroys the session and clears the cookie --> POST /logout
func (h *Handler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Destroy(c.Request().Context(), cookie.Value); err != nil {
			return fail(c, 500, "Server error")
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})

	return ok(c, nil)
}

// CreateItem adds a todo item for the caller --> POST /items
func (h *Handler) CreateItem(c echo.Context) error {
	sess := sessionFrom(c)

	body := struct {
		Text string `json:"text"`
	}{}
	if err := c.Bind(&body); err != nil {
		return fail(c, 400, "Invalid request payload")
	}

	_, err := h.itemService.AddItem(c.Request().Context(), sess.UserID, body.Text)
	if errors.Is(err, service.ErrEmptyText) {
		return fail(c, 400, err.Error())
	}
	if err != nil {
		return fail(c, 500, "Server error")
	}

	return ok(c, nil)
}

// UpdateItem rewrites an item's text --> PUT /items/:id
func (h *Handler) UpdateItem(c echo.Context) error {
	sess := sessionFrom(c)

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, 400, "Invalid item ID")
	}

	body := struct {
		Text string `json:"text"`
	}{}
	if err := c.Bind(&body); err != nil {
		return fail(c, 400, "Invalid request payload")
	}

	err = h.itemService.UpdateItem(c.Request().Context(), sess.UserID, itemID, body.Text)
	switch {
	case errors.Is(err, service.ErrEmptyText):
		return fail(c, 400, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		// Someone else's item and a missing item look the same here.
		return fail(c, 403, "Forbidden")
	case err != nil:
		return fail(c, 500, "Server error")
	}

	return ok(c, nil)
}

// DeleteItem removes an item --> DELETE /items/:id
func (h *Handler) DeleteItem(c echo.Context) error {
	sess := sessionFrom(c)

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, 400, "Invalid item ID")
	}

	err = h.itemService.DeleteItem(c.Request().Context(), sess.UserID, itemID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, 403, "Forbidden")
	case err != nil:
		return fail(c, 500, "Server error")
	}

	return ok(c, nil)
}

// Me reports the caller's identity and telegram binding --> GET /api/me
func (h *Handler) Me(c echo.Context) error {
	sess := sessionFrom(c)

	user, err := h.userService.GetUserByID(c.Request().Context(), sess.UserID)
	if err != nil {
		return fail(c, 500, "Server error")
	}

	return ok(c, map[string]interface{}{
		"username":    user.Username,
		"hasTelegram": user.TelegramChatID != nil,
	})
}

// BindTelegram binds a chat id for notifications --> POST /bind-telegram
func (h *Handler) BindTelegram(c echo.Context) error {
	sess := sessionFrom(c)

	body := struct {
		TelegramChatID int64 `json:"telegramChatId"`
	}{}
	if err := c.Bind(&body); err != nil {
		return fail(c, 400, "Invalid request payload")
	}
	if body.TelegramChatID == 0 {
		return fail(c, 400, "telegramChatId is required")
	}

	if err := h.userService.BindTelegram(c.Request().Context(), sess.UserID, body.TelegramChatID); err != nil {
		return fail(c, 500, "Server error")
	}

	return ok(c, nil)
}

// UnbindTelegram clears the chat binding --> POST /unbind-telegram
func (h *Handler) UnbindTelegram(c echo.Context) error {
	sess := sessionFrom(c)

	if err := h.userService.UnbindTelegram(c.Request().Context(), sess.UserID); err != nil {
		return fail(c, 500, "Server error")
	}

	return ok(c, nil)
}
