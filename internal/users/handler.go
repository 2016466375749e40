package users

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mindful/internal/apperr"
	"mindful/internal/sessions"
)

// Handler handles HTTP requests for users
type Handler struct {
	service  Service
	sessions sessions.Service
	now      func() time.Time
}

// NewHandler creates a new users handler. sessionService fills the user detail view.
func NewHandler(service Service, sessionService sessions.Service) *Handler {
	return &Handler{service: service, sessions: sessionService, now: time.Now}
}

// Register handles POST /api/register
func (h *Handler) Register(c *gin.Context) {
	u := userFromForm(c)

	id, err := h.service.RegisterUser(c.Request.Context(), u)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegisteredResponse{
		Message: "User registered",
		UserID:  id,
	})
}

// List handles GET /api/users. With ?email= the list holds at most the one matching user.
func (h *Handler) List(c *gin.Context) {
	if email, ok := c.GetQuery("email"); ok {
		h.listByEmail(c, email)
		return
	}

	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) listByEmail(c *gin.Context, email string) {
	u, err := h.service.GetUserByEmail(c.Request.Context(), strings.TrimSpace(email))
	if err != nil {
		respondError(c, err)
		return
	}

	users := []User{}
	if u != nil {
		users = append(users, *u)
	}
	c.JSON(http.StatusOK, users)
}

// Get handles GET /api/users/:id. The response carries the sessions the user has already taken.
func (h *Handler) Get(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		return
	}

	history, err := h.sessions.SessionsForUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	now := h.now()
	for _, s := range history {
		if s.ScheduledAt.Before(now) {
			u.AddCompletedSession(s)
		}
	}

	c.JSON(http.StatusOK, u)
}

// Update handles PUT /api/users/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	u := userFromForm(c)
	u.ID = id

	updated, err := h.service.UpdateUser(c.Request.Context(), u)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// Delete handles DELETE /api/users/:id. The user's sessions are left in place.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func userFromForm(c *gin.Context) *User {
	return &User{
		FullName:  c.PostForm("fullName"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		FocusArea: c.PostForm("focusArea"),
	}
}

func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID"})
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	if !apperr.IsValidation(err) {
		_ = c.Error(err)
	}
	c.JSON(apperr.StatusCode(err), ErrorResponse{Error: apperr.PublicMessage(err)})
}
