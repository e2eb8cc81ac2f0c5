package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawcare-dev/pawcare/internal/apiclient"
	"github.com/pawcare-dev/pawcare/internal/models"
	"github.com/pawcare-dev/pawcare/internal/policy"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Firstname    string `json:"Firstname" binding:"required"`
	Lastname     string `json:"Lastname" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"required,oneof=user provider"`
	ProviderType string `json:"providerType" validate:"omitempty,providertype"`
}

// ForgotPasswordRequest represents a password reset request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary Login
// @Description Authenticate against the PawCare API and establish the session cookie pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, envelope, err := s.api.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Login call to upstream API failed")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Unable to reach PawCare API"})
		return
	}
	if result == nil {
		s.audits.Record(models.AuthEvent{
			Type:     models.EventLoginFailed,
			Email:    req.Email,
			ClientIP: c.ClientIP(),
			Detail:   envelope.Message,
		})
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": envelope.Message})
		return
	}

	// Cookie write plus direct-user re-hydration as one unit: no reader of
	// this request can observe a half-updated cookie pair
	if err := s.sessions.Establish(c.Writer, result.Token, &result.User); err != nil {
		s.logger.Error().Err(err).Msg("Failed to establish session")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to establish session"})
		return
	}
	sess := s.sessions.CheckAuth(c.Writer, c.Request, &result.User)
	setSession(c, sess)

	s.audits.Record(models.AuthEvent{
		Type:     models.EventLogin,
		Email:    result.User.Email,
		Role:     string(result.User.Role),
		ClientIP: c.ClientIP(),
	})
	s.logger.Info().Str("email", result.User.Email).Str("role", string(result.User.Role)).Msg("User logged in")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":     result.User,
			"redirect": policy.RoleHome(result.User.Role),
		},
	})
}

// @Summary Register
// @Description Create an account via the PawCare API
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/auth/register [post]
func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := s.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	envelope, err := s.api.Register(c.Request.Context(), apiclient.RegisterRequest{
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		ProviderType: req.ProviderType,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Register call to upstream API failed")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Unable to reach PawCare API"})
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// @Summary Forgot password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Reset request"
// @Success 200 {object} map[string]interface{}
// @Router /api/auth/forgot-password [post]
func (s *Server) forgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	envelope, err := s.api.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("Forgot-password call to upstream API failed")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Unable to reach PawCare API"})
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// @Summary Logout
// @Description Clear the session cookie pair and send the client to the landing page
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/auth/logout [post]
func (s *Server) logout(c *gin.Context) {
	sess, _ := GetSession(c)

	s.sessions.Logout(c.Writer, c.Request)

	if sess.IsAuthenticated {
		s.audits.Record(models.AuthEvent{
			Type:     models.EventLogout,
			Email:    sess.User.Email,
			Role:     string(sess.User.Role),
			ClientIP: c.ClientIP(),
		})
		s.logger.Info().Str("email", sess.User.Email).Msg("User logged out")
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"redirect": policy.LandingPath},
	})
}

// @Summary Current user
// @Description Return the session's principal
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/me [get]
func (s *Server) currentUser(c *gin.Context) {
	sess, _ := GetSession(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"user": sess.User}})
}
