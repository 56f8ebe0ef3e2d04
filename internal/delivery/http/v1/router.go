package v1

import (
	"net/http"

	"go-forms-gateway/config"
	"go-forms-gateway/internal/delivery/http/middleware"
	"go-forms-gateway/internal/delivery/http/response"
	"go-forms-gateway/internal/domain"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	FormUC domain.FormUsecase
	Config *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Form endpoints get the hard per-IP limit on top of the pipeline's
	// own per-client tracker.
	forms := v1.Group("")
	forms.Use(middleware.RateLimitMiddleware(middleware.SubmitRateLimitConfig(
		deps.Config.RateLimitSubmitThreshold,
		deps.Config.RateLimitWindowSeconds,
	)))
	NewFormHandler(forms, deps.FormUC, deps.Config.ContactSubject, deps.Config.ApplySubject)

	return r
}
