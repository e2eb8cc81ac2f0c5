package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// forward proxies a section call upstream under the session's bearer token.
// The guard chain has already authorized the request; the upstream envelope
// passes through verbatim so the app sees the same {success, message, data}
// shape it would get talking to the API directly.
func (s *Server) forward(c *gin.Context, method, upstreamPath string) {
	sess, _ := GetSession(c)

	var body any
	if c.Request.Method != http.MethodGet && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
	}

	envelope, err := s.api.Forward(c.Request.Context(), method, upstreamPath, sess.Token, body)
	if err != nil {
		s.logger.Error().Err(err).Str("path", upstreamPath).Msg("Upstream call failed")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Unable to reach PawCare API"})
		return
	}

	c.JSON(http.StatusOK, envelope)
}
