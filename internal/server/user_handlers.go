package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Consumer home
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /user/home [get]
func (s *Server) userHome(c *gin.Context) {
	s.forward(c, http.MethodGet, "/api/user/home")
}

// @Summary List own bookings
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /user/bookings [get]
func (s *Server) listBookings(c *gin.Context) {
	s.forward(c, http.MethodGet, "/api/bookings")
}

// @Summary Create a booking
// @Tags user
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /user/bookings [post]
func (s *Server) createBooking(c *gin.Context) {
	s.forward(c, http.MethodPost, "/api/bookings")
}

// @Summary Get own profile
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /user/profile [get]
func (s *Server) getProfile(c *gin.Context) {
	sess, _ := GetSession(c)

	user, envelope, err := s.api.Profile(c.Request.Context(), sess.Token)
	if err != nil {
		s.logger.Error().Err(err).Msg("Profile call to upstream API failed")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Unable to reach PawCare API"})
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, envelope)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"user": user}})
}

// @Summary Update own profile
// @Description Updates the profile upstream and refreshes the user_data cookie with the result
// @Tags user
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /user/profile [put]
func (s *Server) updateProfile(c *gin.Context) {
	sess, _ := GetSession(c)

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, envelope, err := s.api.UpdateProfile(c.Request.Context(), sess.Token, fields)
	if err != nil {
		s.logger.Error().Err(err).Msg("Profile update call to upstream API failed")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Unable to reach PawCare API"})
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, envelope)
		return
	}

	// Rewrite the cookie and re-hydrate through the direct-user fast path,
	// same unit-of-work rule as login
	if err := s.sessions.Establish(c.Writer, sess.Token, user); err != nil {
		s.logger.Error().Err(err).Msg("Failed to refresh session after profile update")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to refresh session"})
		return
	}
	setSession(c, s.sessions.CheckAuth(c.Writer, c.Request, user))

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"user": user}})
}
