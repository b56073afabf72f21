package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-scheduler/internal/audit"
	"github.com/BruksfildServices01/court-scheduler/internal/cache"
	"github.com/BruksfildServices01/court-scheduler/internal/config"
	"github.com/BruksfildServices01/court-scheduler/internal/dto"
	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
	"github.com/BruksfildServices01/court-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/court-scheduler/internal/middleware"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	"github.com/BruksfildServices01/court-scheduler/internal/validators"
)

var errUserNotFound = httperr.ErrNotFound("user_not_found", "Usuário não encontrado.")

type UserHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher
	cache  cache.Availability
}

func NewUserHandler(
	db *gorm.DB,
	cfg *config.Config,
	audit *audit.Dispatcher,
	availability cache.Availability,
) *UserHandler {
	if availability == nil {
		availability = cache.Noop{}
	}
	return &UserHandler{db: db, config: cfg, audit: audit, cache: availability}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"omitempty,oneof=admin client"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6"`
	Phone    *string `json:"phone,omitempty"`
	Role     *string `json:"role,omitempty" binding:"omitempty,oneof=admin client"`
}

// --------- Me ---------

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	user, err := h.find(c, userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewUserDTO(user))
}

// UpdateMe deixa o próprio usuário mudar nome, telefone, e-mail e senha.
// O papel só muda pela rota de admin.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Role = nil

	h.update(c, userID, req)
}

// --------- Admin ---------

func (h *UserHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	role := strings.TrimSpace(c.Query("role"))

	q := h.db.WithContext(c.Request.Context()).Model(&models.User{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.Order("name ASC").Find(&users).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserDTO(&users[i]))
	}
	httpresp.List(c, out)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !ownerOrAdmin(c, id) {
		return
	}

	user, err := h.find(c, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewUserDTO(user))
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleClient
	}

	user, err := createUser(
		h.db.WithContext(c.Request.Context()),
		h.config, req.Name, req.Email, req.Password, req.Phone, role,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actor(c),
		Action:   "user_created",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"role": user.Role},
	})

	httpresp.Created(c, dto.NewUserDTO(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	h.update(c, id, req)
}

// ToggleActive inverte o flag active do usuário.
func (h *UserHandler) ToggleActive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.find(c, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	user.Active = !user.Active
	if err := h.db.WithContext(c.Request.Context()).Save(user).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actor(c),
		Action:   "user_toggled",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"active": user.Active},
	})

	httpresp.OK(c, dto.NewUserDTO(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	// agendamentos e vagas em reservas saem junto com o usuário; os dias
	// afetados precisam sair do cache de disponibilidade
	var days []models.Booking
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Booking{}).
			Distinct("court_id", "booking_date").
			Where("user_id = ?", id).
			Find(&days).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM reservation_players WHERE user_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errUserNotFound
		}
		return nil
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	for _, d := range days {
		h.cache.Invalidate(ctx, d.CourtID, d.BookingDate)
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actor(c),
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &id,
	})

	httpresp.NoContent(c)
}

// --------- helpers ---------

func (h *UserHandler) find(c *gin.Context, id uint) (*models.User, error) {
	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (h *UserHandler) update(c *gin.Context, id uint, req UpdateUserRequest) {
	user, err := h.find(c, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.Email != nil {
		email := validators.NormalizeEmail(*req.Email)
		if email != user.Email {
			var count int64
			if err := h.db.WithContext(c.Request.Context()).
				Model(&models.User{}).
				Where("email = ? AND id <> ?", email, user.ID).
				Count(&count).Error; err != nil {
				httperr.Respond(c, err)
				return
			}
			if count > 0 {
				httperr.Respond(c, errEmailInUse)
				return
			}
			user.Email = email
		}
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		user.PasswordHash = string(hashed)
	}

	if err := h.db.WithContext(c.Request.Context()).Save(user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Respond(c, errEmailInUse)
			return
		}
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actor(c),
		Action:   "user_updated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.OK(c, dto.NewUserDTO(user))
}
