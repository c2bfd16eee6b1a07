package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luminedu/shift-planner-api/internal/middleware"
	"github.com/luminedu/shift-planner-api/internal/models"
)

func currentClaims(c *gin.Context) *models.JWTClaims {
	if v, exists := c.Get(middleware.ContextUserKey); exists {
		if claims, ok := v.(*models.JWTClaims); ok {
			return claims
		}
	}
	return nil
}

// currentOrgID returns the organization scope from the token claims. An
// empty value propagates down to the repositories, which answer with empty
// result sets rather than cross-org data.
func currentOrgID(c *gin.Context) string {
	if claims := currentClaims(c); claims != nil {
		return claims.OrgID
	}
	return ""
}

// yearMonthParams reads ?year=&month= with the current month as fallback.
func yearMonthParams(c *gin.Context) (int, time.Month, bool) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, 0, false
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, false
		}
		month = time.Month(parsed)
	}
	return year, month, true
}
