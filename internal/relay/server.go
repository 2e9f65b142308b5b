package relay

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/logging"
)

// Server exposes the relay HTTP API.
type Server struct {
	codec   *Codec
	store   CredentialStore
	nonces  NonceChecker
	limiter *RateLimiter
	logger  *slog.Logger
}

// NewServer wires the relay endpoints. The rate limiter and nonce checker
// are optional; nil disables the respective protection.
func NewServer(codec *Codec, store CredentialStore, nonces NonceChecker, limiter *RateLimiter, logger *slog.Logger) *Server {
	return &Server{codec: codec, store: store, nonces: nonces, limiter: limiter, logger: logger}
}

type verifyPayload struct {
	Ping string `json:"ping"`
}

type tokenPayload struct {
	SWID       string `json:"swid"`
	EspnS2     string `json:"espn_s2"`
	LeagueID   int    `json:"leagueId"`
	TeamID     int    `json:"teamId"`
	SeasonYear int    `json:"seasonYear"`
}

// Handler returns the full HTTP handler: gin routes wrapped in a CORS layer
// that only admits browser-extension origins.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	if s.limiter != nil {
		api.Use(s.limiter.Middleware())
	}
	api.POST("/auth/verify", s.handleVerify)
	api.POST("/espn/tokens", s.handleTokens)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return strings.HasPrefix(origin, "chrome-extension://")
		},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

func (s *Server) handleVerify(c *gin.Context) {
	var sealed SealedPayload
	if err := c.ShouldBindJSON(&sealed); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed payload"})
		return
	}

	var payload verifyPayload
	if !s.open(c, sealed, &payload) {
		return
	}
	if payload.Ping != "pong" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid payload content"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Authenticated successfully"})
}

func (s *Server) handleTokens(c *gin.Context) {
	var sealed SealedPayload
	if err := c.ShouldBindJSON(&sealed); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed payload"})
		return
	}

	var payload tokenPayload
	if !s.open(c, sealed, &payload) {
		return
	}
	if payload.SWID == "" || payload.EspnS2 == "" || payload.LeagueID == 0 || payload.TeamID == 0 || payload.SeasonYear == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required ESPN data fields in payload"})
		return
	}

	err := s.store.Upsert(c.Request.Context(), Credentials{
		SWID:       payload.SWID,
		EspnS2:     payload.EspnS2,
		LeagueID:   payload.LeagueID,
		TeamID:     payload.TeamID,
		SeasonYear: payload.SeasonYear,
	})
	if err != nil {
		logging.Error(s.logger, "credential upsert failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store tokens"})
		return
	}

	logging.Info(s.logger, "credentials updated",
		logging.FieldLeagueID, payload.LeagueID, logging.FieldTeamID, payload.TeamID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// open decrypts the sealed payload, enforces the timestamp window and the
// seen-nonce replay check, and writes the error response itself on failure.
func (s *Server) open(c *gin.Context, sealed SealedPayload, out any) bool {
	nonce, err := s.codec.Open(sealed, out)
	if err != nil {
		status := http.StatusUnauthorized
		msg := "Invalid secret key or decryption failed"
		if errors.Is(err, ErrStalePayload) {
			msg = "Payload expired"
		}
		c.JSON(status, gin.H{"error": msg})
		return false
	}

	if s.nonces != nil {
		seen, err := s.nonces.Seen(c.Request.Context(), nonce)
		if err != nil {
			logging.Warn(s.logger, "nonce check unavailable", "error", err)
		} else if seen {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Replayed payload rejected"})
			return false
		}
	}
	return true
}
