package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pinboardhq/pinboard/internal/auth"
)

const (
	ctxClaims = "claims"
	ctxToken  = "token"
)

// requireAuth verifies the Bearer token and stores the claims and raw
// token on the request context.
func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	claims, err := s.issuer.Verify(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
		return
	}

	// Keep the session alive; the sweeper expires sessions whose last
	// activity is older than the token lifetime.
	if err := auth.TouchSession(s.db, parts[1]); err != nil {
		log.Printf("server: touch session: %v", err)
	}

	c.Set(ctxClaims, claims)
	c.Set(ctxToken, parts[1])
	c.Next()
}

// currentClaims returns the verified claims set by requireAuth.
func currentClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil
	}
	return v.(*auth.Claims)
}

// currentToken returns the raw bearer token set by requireAuth.
func currentToken(c *gin.Context) string {
	return c.GetString(ctxToken)
}
