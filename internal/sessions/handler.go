package sessions

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mindful/internal/apperr"
)

// scheduledAt layouts: ISO-8601 local date-time with optional seconds and fraction.
var scheduledAtLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// Handler handles HTTP requests for sessions
type Handler struct {
	service Service
}

// NewHandler creates a new sessions handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Schedule handles POST /api/sessions
func (h *Handler) Schedule(c *gin.Context) {
	sess, err := sessionFromForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	id, err := h.service.ScheduleSession(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ScheduledResponse{
		Message:   "Session scheduled",
		SessionID: id,
	})
}

// ListByUser handles GET /api/sessions?userId=
func (h *Handler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(strings.TrimSpace(c.Query("userId")), 10, 64)
	if err != nil {
		respondError(c, apperr.Validation("userId must be a number"))
		return
	}

	sessions, err := h.service.SessionsForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	summaries := make([]Summary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, s.Summary())
	}
	c.JSON(http.StatusOK, summaries)
}

// Get handles GET /api/sessions/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	sess, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if sess == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Session not found"})
		return
	}

	c.JSON(http.StatusOK, sess)
}

// UpdateReflection handles PATCH /api/sessions/:id/reflection
func (h *Handler) UpdateReflection(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	duration, err := formInt(c, "durationMinutes")
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.service.UpdateReflection(c.Request.Context(), id, c.PostForm("reflectionNotes"), duration)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// Delete handles DELETE /api/sessions/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func sessionFromForm(c *gin.Context) (*Session, error) {
	userID, err := formInt64(c, "userId")
	if err != nil {
		return nil, err
	}
	duration, err := formInt(c, "durationMinutes")
	if err != nil {
		return nil, err
	}
	scheduledAt, err := ParseScheduledAt(c.PostForm("scheduledAt"))
	if err != nil {
		return nil, apperr.Validation("scheduledAt must be an ISO-8601 local date-time")
	}

	sess := New()
	sess.UserID = userID
	sess.Title = c.PostForm("title")
	sess.Description = c.PostForm("description")
	sess.Category = c.PostForm("category")
	sess.Difficulty = c.PostForm("difficulty")
	sess.ScheduledAt = scheduledAt
	sess.DurationMinutes = duration
	sess.ReflectionNotes = c.PostForm("reflectionNotes")

	return sess, nil
}

// ParseScheduledAt parses a local date-time in the server's zone.
// An empty value yields the zero time, which validation rejects.
func ParseScheduledAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	var lastErr error
	for _, layout := range scheduledAtLayouts {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// formInt64 reads an optional integer form field. Missing means zero.
func formInt64(c *gin.Context, field string) (int64, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Validation(field + " must be a number")
	}
	return n, nil
}

func formInt(c *gin.Context, field string) (int, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation(field + " must be a number")
	}
	return n, nil
}

func sessionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid session ID"})
		return 0, false
	}
	return id, true
}

// respondError writes the client-safe form of err. Internal causes are
// attached to the context so the request log carries them.
func respondError(c *gin.Context, err error) {
	if !apperr.IsValidation(err) {
		_ = c.Error(err)
	}
	c.JSON(apperr.StatusCode(err), ErrorResponse{Error: apperr.PublicMessage(err)})
}
