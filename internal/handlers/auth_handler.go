package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/audit"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/config"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httpresp"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/middleware"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/validators"
)

type AuthHandler struct {
	admins  store.Repo[models.Admin, models.AdminID]
	clients store.Repo[models.Client, models.ClientID]
	config  *config.Config
	audit   *audit.Dispatcher
}

func NewAuthHandler(s store.Store, cfg *config.Config, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{
		admins:  store.NewRepo[models.Admin, models.AdminID](s, store.Admins),
		clients: store.NewRepo[models.Client, models.ClientID](s, store.Clients),
		config:  cfg,
		audit:   audit,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username     string   `json:"username"`
	Password     string   `json:"password"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	PhoneNumbers []string `json:"phoneNumbers"`
	Email        string   `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type CreateAdminRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// UserResponse is the public account shape returned by login and profile.
type UserResponse struct {
	ID           int64    `json:"id"`
	Username     string   `json:"username"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        string   `json:"email"`
	PhoneNumbers []string `json:"phoneNumbers,omitempty"`
	Role         string   `json:"role"`
	Active       bool     `json:"active"`
}

func adminUser(a *models.Admin) UserResponse {
	return UserResponse{
		ID:        int64(a.ID),
		Username:  a.Username,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
		Active:    a.Active,
	}
}

func clientUser(c *models.Client) UserResponse {
	return UserResponse{
		ID:           int64(c.ID),
		Username:     c.Username,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		PhoneNumbers: c.PhoneNumbers,
		Role:         models.RoleClient,
		Active:       c.Active,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bind(c, validators.Register, &req) {
		return
	}
	ctx := c.Request.Context()

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := h.usernameTaken(c, username)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if taken {
		httperr.Write(c, http.StatusConflict, httperr.KindConflict, "Username already exists")
		return
	}

	exists, err := h.clients.Exists(ctx, store.Filter{"email": email})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if exists {
		httperr.Write(c, http.StatusConflict, httperr.KindConflict, "Email already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, httperr.KindInternal, "Failed to hash password")
		return
	}

	client, err := h.clients.Create(ctx, &models.Client{
		Username:     username,
		Password:     string(hashed),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PhoneNumbers: req.PhoneNumbers,
		Email:        email,
		Active:       true,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, client.Public())
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, validators.Login, &req) {
		return
	}
	ctx := c.Request.Context()

	var (
		user UserResponse
		hash string
	)

	admins, err := h.admins.Find(ctx, store.Filter{"username": req.Username})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if len(admins) > 0 {
		user, hash = adminUser(&admins[0]), admins[0].Password
	} else {
		clients, err := h.clients.Find(ctx, store.Filter{"username": req.Username})
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		if len(clients) == 0 {
			httperr.FromError(c, httperr.New(httperr.KindInvalidCredentials, "Invalid username or password"))
			return
		}
		user, hash = clientUser(&clients[0]), clients[0].Password
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		httperr.FromError(c, httperr.New(httperr.KindInvalidCredentials, "Invalid username or password"))
		return
	}
	if !user.Active {
		httperr.FromError(c, httperr.New(httperr.KindAccountInactive, "Account is inactive"))
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, h.config.JWTExpire, user.ID, user.Username, user.Role)
	if err != nil {
		httperr.Internal(c, httperr.KindInternal, "Failed to generate token")
		return
	}

	httpresp.OK(c, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.UserID(c)

	if middleware.IsClient(c) {
		client, err := h.clients.Get(ctx, models.ClientID(id))
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		httpresp.OK(c, clientUser(client))
		return
	}

	admin, err := h.admins.Get(ctx, models.AdminID(id))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, adminUser(admin))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bind(c, validators.ChangePassword, &req) {
		return
	}
	ctx := c.Request.Context()
	id := middleware.UserID(c)

	var current string
	if middleware.IsClient(c) {
		client, err := h.clients.Get(ctx, models.ClientID(id))
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		current = client.Password
	} else {
		admin, err := h.admins.Get(ctx, models.AdminID(id))
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		current = admin.Password
	}

	if bcrypt.CompareHashAndPassword([]byte(current), []byte(req.CurrentPassword)) != nil {
		httperr.BadRequest(c, httperr.KindValidation, "Current password is incorrect")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, httperr.KindInternal, "Failed to hash password")
		return
	}

	patch := store.Patch{"password": string(hashed)}
	if middleware.IsClient(c) {
		_, err = h.clients.Update(ctx, models.ClientID(id), patch)
	} else {
		_, err = h.admins.Update(ctx, models.AdminID(id), patch)
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(middleware.Actor(c).Event("password_changed", middleware.Role(c), id, nil))
	httpresp.Message(c, http.StatusOK, "Password updated", nil)
}

// --------- Staff accounts ---------

func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if !bind(c, validators.CreateAdmin, &req) {
		return
	}
	ctx := c.Request.Context()

	username := strings.TrimSpace(req.Username)
	taken, err := h.usernameTaken(c, username)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if taken {
		httperr.Write(c, http.StatusConflict, httperr.KindConflict, "Username already exists")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, httperr.KindInternal, "Failed to hash password")
		return
	}

	admin, err := h.admins.Create(ctx, &models.Admin{
		Username:  username,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Role:      role,
		Active:    true,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(middleware.Actor(c).Event("admin_created", "admin", int64(admin.ID), map[string]any{
		"username": admin.Username,
		"role":     admin.Role,
	}))
	httpresp.Created(c, admin.Public())
}

func (h *AuthHandler) ListAdmins(c *gin.Context) {
	admins, err := h.admins.All(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	for i := range admins {
		admins[i] = admins[i].Public()
	}
	httpresp.List(c, admins)
}

func (h *AuthHandler) SetAdminActive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req setActiveRequest
	if !bind(c, validators.SetActive, &req) {
		return
	}

	if !req.Active && id == middleware.UserID(c) {
		httperr.BadRequest(c, httperr.KindValidation, "You cannot deactivate your own account")
		return
	}

	admin, err := h.admins.Update(c.Request.Context(), models.AdminID(id), store.Patch{"active": req.Active})
	if err != nil {
		httperr.FromError(c, notFound(err, "Admin not found"))
		return
	}

	action := "admin_deactivated"
	if req.Active {
		action = "admin_activated"
	}
	h.audit.Dispatch(middleware.Actor(c).Event(action, "admin", id, nil))
	httpresp.OK(c, admin.Public())
}

// usernameTaken checks both account collections.
func (h *AuthHandler) usernameTaken(c *gin.Context, username string) (bool, error) {
	ctx := c.Request.Context()
	f := store.Filter{"username": username}

	taken, err := h.admins.Exists(ctx, f)
	if err != nil || taken {
		return taken, err
	}
	return h.clients.Exists(ctx, f)
}
