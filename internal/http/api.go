package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"signup-service/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	registration service.RegistrationService
	verification service.VerificationService
}

func NewHandler(registration service.RegistrationService, verification service.VerificationService) *Handler {
	return &Handler{
		registration: registration,
		verification: verification,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api/v1")
	{
		api.POST("/sign-up", h.signUp)
		api.GET("/verify", h.verifyQuery)
		api.POST("/verify", h.verifyBody)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

type signUpRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type verifyRequest struct {
	Token string `json:"token"`
}

func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	// A malformed or empty body is handled as an all-fields-missing payload
	// so the response still lists every violated field.
	_ = c.ShouldBindJSON(&req)

	message, err := h.registration.Register(c.Request.Context(), service.SignUpInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *Handler) verifyQuery(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "token is required"})
		return
	}
	h.verify(c, token)
}

func (h *Handler) verifyBody(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "token is required"})
		return
	}
	h.verify(c, req.Token)
}

func (h *Handler) verify(c *gin.Context, token string) {
	message, err := h.verification.Verify(c.Request.Context(), token)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// writeError maps domain errors onto the wire format: validation failures
// carry an ordered errors array, everything else a single errorMessage.
// Untyped errors collapse to a generic 500 so internals never leak.
func writeError(c *gin.Context, err error) {
	if vErr, ok := service.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": vErr.Fields})
		return
	}
	if domainErr, ok := service.AsError(err); ok {
		c.JSON(domainErr.Status, gin.H{"errorMessage": domainErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "internal server error"})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
