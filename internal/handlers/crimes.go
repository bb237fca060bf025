package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"crimewatch/api/internal/metrics"
	"crimewatch/api/internal/models"
	"crimewatch/api/internal/repository"
	"crimewatch/api/internal/service"
)

type createCrimeRequest struct {
	CrimeType   string   `json:"crimeType"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	ReportedBy  string   `json:"reportedBy" binding:"required"`
}

type crimeResponse struct {
	ID          string    `json:"id"`
	CrimeType   string    `json:"crimeType"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ReportedAt  time.Time `json:"reportedAt"`
	Status      string    `json:"status"`
	ReportedBy  string    `json:"reportedBy"`
}

func toCrimeResponse(crime models.Crime) crimeResponse {
	return crimeResponse{
		ID:          crime.ID,
		CrimeType:   crime.CrimeType,
		Description: crime.Description,
		Location:    crime.Location,
		Latitude:    crime.Latitude,
		Longitude:   crime.Longitude,
		ReportedAt:  crime.ReportedAt,
		Status:      crime.Status,
		ReportedBy:  crime.ReportedBy,
	}
}

func toCrimeResponses(crimes []models.Crime) []crimeResponse {
	resp := make([]crimeResponse, 0, len(crimes))
	for _, crime := range crimes {
		resp = append(resp, toCrimeResponse(crime))
	}
	return resp
}

func (h HandlerSet) CreateCrime(c *gin.Context) {
	var req createCrimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crime, err := h.crimeService.Report(c.Request.Context(), service.ReportInput{
		CrimeType:   req.CrimeType,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ReportedBy:  req.ReportedBy,
	})
	if err != nil {
		if errors.Is(err, service.ErrMissingCoordinates) || errors.Is(err, service.ErrMissingReporter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("create crime failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save report"})
		return
	}

	metrics.ReportsCreatedTotal.Inc()

	c.JSON(http.StatusOK, toCrimeResponse(crime))
}

func (h HandlerSet) ListCrimes(c *gin.Context) {
	crimes, err := h.crimeService.ListAll(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list crimes failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list reports"})
		return
	}

	c.JSON(http.StatusOK, toCrimeResponses(crimes))
}

func (h HandlerSet) GetCrime(c *gin.Context) {
	crime, err := h.crimeService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrCrimeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Crime not found with id: " + c.Param("id")})
			return
		}
		h.log.Error().Err(err).Msg("get crime failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load report"})
		return
	}

	c.JSON(http.StatusOK, toCrimeResponse(crime))
}

func (h HandlerSet) CrimesByUser(c *gin.Context) {
	crimes, err := h.crimeService.ListByReporter(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.log.Error().Err(err).Msg("list crimes by user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list reports"})
		return
	}

	c.JSON(http.StatusOK, toCrimeResponses(crimes))
}

func (h HandlerSet) NearbyCrimes(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude is required"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "longitude is required"})
		return
	}

	crimes, err := h.crimeService.Nearby(c.Request.Context(), lat, lon)
	if err != nil {
		h.log.Error().Err(err).Msg("nearby query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not query reports"})
		return
	}

	metrics.NearbyQueriesTotal.Inc()

	c.JSON(http.StatusOK, toCrimeResponses(crimes))
}

func (h HandlerSet) UploadEvidence(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_required"})
		return
	}
	defer file.Close()

	key, err := h.evidence.Attach(c.Request.Context(), c.Param("id"), file, header)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCrimeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Crime not found with id: " + c.Param("id")})
		case errors.Is(err, service.ErrUnsupportedEvidence):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.Error().Err(err).Str("crime_id", c.Param("id")).Msg("evidence upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store evidence"})
		}
		return
	}

	url, err := h.evidence.DownloadURL(c.Request.Context(), key)
	if err != nil {
		h.log.Warn().Err(err).Str("key", key).Msg("presign failed")
		c.JSON(http.StatusOK, gin.H{"key": key})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "url": url})
}
