package sessions

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the session endpoints on rg (normally /api).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.Schedule)                         // POST /api/sessions
		sessions.GET("", h.ListByUser)                        // GET /api/sessions?userId=
		sessions.GET("/:id", h.Get)                           // GET /api/sessions/:id
		sessions.PATCH("/:id/reflection", h.UpdateReflection) // PATCH /api/sessions/:id/reflection
		sessions.DELETE("/:id", h.Delete)                     // DELETE /api/sessions/:id
	}
}
