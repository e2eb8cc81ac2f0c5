package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawcare-dev/pawcare/internal/capability"
)

// @Summary Provider dashboard
// @Tags provider
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /provider/dashboard [get]
func (s *Server) providerDashboard(c *gin.Context) {
	s.forward(c, http.MethodGet, "/api/provider/dashboard")
}

// @Summary Provider navigation capabilities
// @Description Resolve which feature groups the session's provider type can see
// @Tags provider
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /provider/nav [get]
func (s *Server) providerNav(c *gin.Context) {
	sess, _ := GetSession(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    capability.FlagsFor(sess.User.ProviderType),
	})
}

// @Summary List services
// @Tags provider
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /provider/services [get]
func (s *Server) listServices(c *gin.Context) {
	s.forward(c, http.MethodGet, "/api/provider/services")
}

// @Summary Create service
// @Tags provider
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /provider/services [post]
func (s *Server) createService(c *gin.Context) {
	s.forward(c, http.MethodPost, "/api/provider/services")
}

// @Summary Update service
// @Tags provider
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} map[string]interface{}
// @Router /provider/services/{id} [put]
func (s *Server) updateService(c *gin.Context) {
	s.forward(c, http.MethodPut, "/api/provider/services/"+c.Param("id"))
}

// @Summary Delete service
// @Tags provider
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} map[string]interface{}
// @Router /provider/services/{id} [delete]
func (s *Server) deleteService(c *gin.Context) {
	s.forward(c, http.MethodDelete, "/api/provider/services/"+c.Param("id"))
}

// @Summary List incoming bookings
// @Tags provider
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /provider/bookings [get]
func (s *Server) providerBookings(c *gin.Context) {
	s.forward(c, http.MethodGet, "/api/provider/bookings")
}

// @Summary Update booking status
// @Tags provider
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]interface{}
// @Router /provider/bookings/{id} [put]
func (s *Server) updateBookingStatus(c *gin.Context) {
	s.forward(c, http.MethodPut, "/api/provider/bookings/"+c.Param("id"))
}

// @Summary List inventory
// @Tags provider
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /provider/inventory [get]
func (s *Server) listInventory(c *gin.Context) {
	s.forward(c, http.MethodGet, "/api/provider/inventory")
}

// @Summary Create inventory item
// @Tags provider
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /provider/inventory [post]
func (s *Server) createInventoryItem(c *gin.Context) {
	s.forward(c, http.MethodPost, "/api/provider/inventory")
}

// @Summary Update inventory item
// @Tags provider
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} map[string]interface{}
// @Router /provider/inventory/{id} [put]
func (s *Server) updateInventoryItem(c *gin.Context) {
	s.forward(c, http.MethodPut, "/api/provider/inventory/"+c.Param("id"))
}

// @Summary Delete inventory item
// @Tags provider
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} map[string]interface{}
// @Router /provider/inventory/{id} [delete]
func (s *Server) deleteInventoryItem(c *gin.Context) {
	s.forward(c, http.MethodDelete, "/api/provider/inventory/"+c.Param("id"))
}

// @Summary Medical records
// @Tags provider
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /provider/vet/records [get]
func (s *Server) vetRecords(c *gin.Context) {
	s.forward(c, http.MethodGet, "/api/provider/vet/records")
}
