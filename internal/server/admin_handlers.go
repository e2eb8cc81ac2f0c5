package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary Admin overview
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin [get]
func (s *Server) adminOverview(c *gin.Context) {
	s.forward(c, http.MethodGet, "/api/admin/overview")
}

// @Summary List accounts
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/users [get]
func (s *Server) adminListUsers(c *gin.Context) {
	s.forward(c, http.MethodGet, "/api/admin/users")
}

// @Summary Delete an account
// @Tags admin
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/users/{id} [delete]
func (s *Server) adminDeleteUser(c *gin.Context) {
	s.forward(c, http.MethodDelete, "/api/admin/users/"+c.Param("id"))
}

// @Summary Providers awaiting verification
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/providers/pending [get]
func (s *Server) adminPendingProviders(c *gin.Context) {
	s.forward(c, http.MethodGet, "/api/admin/providers/pending")
}

// @Summary Verify a provider
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/providers/{id}/verify [put]
func (s *Server) adminVerifyProvider(c *gin.Context) {
	s.forward(c, http.MethodPut, "/api/admin/providers/"+c.Param("id")+"/verify")
}

// @Summary Auth audit log
// @Description Recent logins, logouts, healed sessions and denied access, newest first
// @Tags admin
// @Produce json
// @Param limit query int false "Max entries (default 100)"
// @Success 200 {object} map[string]interface{}
// @Router /admin/audit [get]
func (s *Server) adminAuditLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	events, err := s.audits.Recent(limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list auth events")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"events": events}})
}
