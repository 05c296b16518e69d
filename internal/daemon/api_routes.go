package daemon

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"crmdash/internal/types"
)

func (a *API) RegisterRoutes(r *gin.Engine, token string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	r.GET("/health", a.Health)

	api := r.Group("/api")
	api.Use(TokenAuthMiddleware(token))

	notifications := api.Group("/notifications")
	{
		notifications.GET("/global", a.GlobalNotifications)
		notifications.GET("/:userId", a.UserNotifications)
		notifications.PUT("/read/:id", a.MarkNotificationRead)
		notifications.POST("", a.CreateNotification)
	}

	for _, resource := range types.Resources() {
		h := recordHandlers{resource: resource, records: a.Records}
		group := api.Group("/" + string(resource))
		group.GET("", h.list)
		group.POST("", h.create)
		group.GET("/:id", h.get)
		group.PUT("/:id", h.update)
		group.DELETE("/:id", h.delete)
	}
}

// NewRouter builds the gin engine serving the API.
func NewRouter(a *API, token string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware(a.Logger))
	a.RegisterRoutes(r, token)
	return r
}
