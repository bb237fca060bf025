package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"crimewatch/api/internal/admin"
	"crimewatch/api/internal/metrics"
	"crimewatch/api/internal/middleware"
	"crimewatch/api/internal/repository"
)

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h HandlerSet) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.allowAdminLoginAttempt(c) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
		return
	}

	token, err := h.adminSessions.Login(req.Username, req.Password)
	if err != nil {
		metrics.AdminLoginFailuresTotal.Inc()
		if errors.Is(err, admin.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("admin login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	metrics.AdminSessionsActive.Set(float64(h.adminSessions.ActiveCount()))

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"message": "Admin login successful",
	})
}

func (h HandlerSet) AdminLogout(c *gin.Context) {
	token := c.GetHeader(middleware.AdminTokenHeader)
	h.adminSessions.Logout(token)

	metrics.AdminSessionsActive.Set(float64(h.adminSessions.ActiveCount()))

	c.JSON(http.StatusOK, gin.H{"message": "Admin logged out"})
}

func (h HandlerSet) AdminListCrimes(c *gin.Context) {
	crimes, err := h.crimeService.ListAll(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("admin list crimes failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list reports"})
		return
	}

	c.JSON(http.StatusOK, toCrimeResponses(crimes))
}

func (h HandlerSet) AdminUpdateCrimeStatus(c *gin.Context) {
	crimeID := c.Query("crimeId")
	status := c.Query("status")
	if crimeID == "" || status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "crimeId and status are required"})
		return
	}

	crime, err := h.crimeService.UpdateStatus(c.Request.Context(), crimeID, status)
	if err != nil {
		if errors.Is(err, repository.ErrCrimeNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Crime not found with id: " + crimeID})
			return
		}
		h.log.Error().Err(err).Str("crime_id", crimeID).Msg("status update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update report"})
		return
	}

	c.JSON(http.StatusOK, toCrimeResponse(crime))
}

func (h HandlerSet) AdminDeleteCrime(c *gin.Context) {
	crimeID := c.Param("crimeId")

	if err := h.crimeService.Delete(c.Request.Context(), crimeID); err != nil {
		if errors.Is(err, repository.ErrCrimeNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Crime not found with id: " + crimeID})
			return
		}
		h.log.Error().Err(err).Str("crime_id", crimeID).Msg("delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Crime deleted"})
}

// allowAdminLoginAttempt rate-limits login attempts per client IP through
// redis. Without a redis client every attempt is allowed.
func (h HandlerSet) allowAdminLoginAttempt(c *gin.Context) bool {
	if h.cache == nil || h.cfg.Admin.LoginRateLimit <= 0 {
		return true
	}

	key := fmt.Sprintf("admin:login:%s", c.ClientIP())
	ctx := c.Request.Context()

	count, err := h.cache.Incr(ctx, key).Result()
	if err != nil {
		h.log.Warn().Err(err).Msg("login rate limiter unavailable")
		return true
	}
	if count == 1 {
		h.cache.Expire(ctx, key, h.cfg.Admin.LoginRateWindow)
	}

	return count <= int64(h.cfg.Admin.LoginRateLimit)
}
