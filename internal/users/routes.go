package users

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the user endpoints on rg (normally /api).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register) // POST /api/register

	users := rg.Group("/users")
	{
		users.GET("", h.List)          // GET /api/users[?email=]
		users.GET("/:id", h.Get)       // GET /api/users/:id
		users.PUT("/:id", h.Update)    // PUT /api/users/:id
		users.DELETE("/:id", h.Delete) // DELETE /api/users/:id
	}
}
