package server

import (
	"errors"
	"math"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zusu/flappy-arcade/internal/leaderboard"
)

type nudgeRequest struct {
	Change *int `json:"change"`
}

type submitScoreRequest struct {
	Username string   `json:"username"`
	Score    *float64 `json:"score"`
}

type checkUsernameRequest struct {
	Username        string `json:"username"`
	CurrentUsername string `json:"currentUsername"`
}

type updateUsernameRequest struct {
	OldUsername string `json:"oldUsername"`
	NewUsername string `json:"newUsername"`
}

type airdropRequest struct {
	WalletAddress string `json:"walletAddress"`
}

func (s *Server) handleActiveUsers(c *gin.Context) {
	n, err := s.svc.ActiveUsers(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	metricActiveUsers.Set(float64(n))
	c.JSON(http.StatusOK, gin.H{"activeUsers": n})
}

func (s *Server) handleNudgeActiveUsers(c *gin.Context) {
	var req nudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Change == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "change is required"})
		return
	}
	if !s.nudgeGate.Allow() {
		metricRateLimited.Inc()
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "too many requests"})
		return
	}
	n, err := s.svc.NudgeActiveUsers(c.Request.Context(), *req.Change)
	if err != nil {
		s.fail(c, err)
		return
	}
	metricActiveUsers.Set(float64(n))
	c.JSON(http.StatusOK, gin.H{"success": true, "activeUsers": n})
}

func (s *Server) handleSubmitScore(c *gin.Context) {
	var req submitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Score == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "username and score are required"})
		return
	}
	if *req.Score < 0 || math.IsNaN(*req.Score) || math.IsInf(*req.Score, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "score must be a non-negative number"})
		return
	}

	high, err := s.svc.SubmitScore(c.Request.Context(), username, int(*req.Score))
	if err != nil {
		s.fail(c, err)
		return
	}
	metricScoresSubmitted.Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "highScore": high})
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	entries, cached, err := s.svc.Leaderboard(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if cached {
		metricCacheHits.Inc()
	} else {
		metricCacheMisses.Inc()
	}
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

func (s *Server) handleCheckUsername(c *gin.Context) {
	var req checkUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Username) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "username is required"})
		return
	}
	available, err := s.svc.CheckUsername(c.Request.Context(), strings.TrimSpace(req.Username), req.CurrentUsername)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

func (s *Server) handleUpdateUsername(c *gin.Context) {
	var req updateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	oldName := strings.TrimSpace(req.OldUsername)
	newName := strings.TrimSpace(req.NewUsername)
	if oldName == "" || newName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "oldUsername and newUsername are required"})
		return
	}

	err := s.svc.RenameUser(c.Request.Context(), oldName, newName)
	switch {
	case errors.Is(err, leaderboard.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "username already taken"})
	case errors.Is(err, leaderboard.ErrUnknownUser):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "unknown username"})
	case err != nil:
		s.fail(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "username updated"})
	}
}

func (s *Server) handleAirdrop(c *gin.Context) {
	var req airdropRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.WalletAddress) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "walletAddress is required"})
		return
	}
	username, err := s.svc.Airdrop(c.Request.Context(), strings.TrimSpace(req.WalletAddress))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "username": username})
}

func (s *Server) handleHealth(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	players, err := s.svc.PlayerCount(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"uptimeSeconds": int(time.Since(s.startedAt).Seconds()),
		"goroutines":    runtime.NumGoroutine(),
		"heapAllocMB":   float64(mem.HeapAlloc) / (1 << 20),
		"players":       players,
	})
}

// fail logs the error with the request ID and returns a generic 500 body.
func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error("handler error",
		"id", c.GetString("request_id"),
		"path", c.Request.URL.Path,
		"err", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
}
