package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-scheduler/internal/audit"
	"github.com/BruksfildServices01/court-scheduler/internal/config"
	"github.com/BruksfildServices01/court-scheduler/internal/dto"
	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
	"github.com/BruksfildServices01/court-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/court-scheduler/internal/middleware"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	"github.com/BruksfildServices01/court-scheduler/internal/validators"
)

var errEmailInUse = httperr.ErrDuplicate("email_in_use", "E-mail já cadastrado.")

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, audit: audit, now: time.Now}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User  dto.UserDTO `json:"user"`
	Token string      `json:"token"`
}

// --------- Handlers ---------

// Register cria sempre um cliente. Admins são criados pela rota /users.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := createUser(h.db, h.config, req.Name, req.Email, req.Password, req.Phone, models.RoleClient)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	token, err := middleware.IssueToken(h.config.JWTSecret, user.ID, user.Role, h.now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	httpresp.Created(c, authResponse{User: dto.NewUserDTO(user), Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var user models.User
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", validators.NormalizeEmail(req.Email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	if !user.Active {
		httperr.Forbidden(c, "user_inactive", "Usuário desativado.")
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, user.ID, user.Role, h.now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	httpresp.OK(c, authResponse{User: dto.NewUserDTO(&user), Token: token})
}

// createUser valida o e-mail e grava o usuário com a senha em bcrypt.
func createUser(
	db *gorm.DB,
	cfg *config.Config,
	name, email, password, phone, role string,
) (*models.User, error) {

	email = validators.NormalizeEmail(email)

	if cfg.CheckEmailDomain && !validators.IsEmailDomainValid(email) {
		return nil, httperr.ErrValidation(
			"invalid_email_domain",
			"O domínio do e-mail informado não parece ser válido.",
		)
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errEmailInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        phone,
		Role:         role,
		Active:       true,
	}

	if err := db.Create(user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, errEmailInUse
		}
		return nil, err
	}

	return user, nil
}
