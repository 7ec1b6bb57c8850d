package server

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shakyaa89/MoneyTracker/internal/model"
)

// Payloads above this size are rejected before decoding.
const maxBodyBytes = 1 << 20

// Server serves the finance document API over a Repository.
type Server struct {
	repo Repository
}

// New creates a Server.
func New(repo Repository) *Server {
	return &Server{repo: repo}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/api/health", s.health)
	router.GET("/api/finance", s.getFinance)
	router.PUT("/api/finance", s.putFinance)

	return router
}

func (s *Server) health(c *gin.Context) {
	status := "connected"
	if err := s.repo.Ping(c.Request.Context()); err != nil {
		status = "disconnected"
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "mongo": status})
}

// getFinance returns the singleton document, creating it with the default
// account and category sets on first read.
func (s *Server) getFinance(c *gin.Context) {
	ctx := c.Request.Context()

	ledger, found, err := s.repo.Get(ctx)
	if err != nil {
		log.Printf("GET /api/finance failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch finance data"})
		return
	}
	if !found {
		ledger, err = s.repo.Replace(ctx, model.DefaultLedger())
		if err != nil {
			log.Printf("GET /api/finance seeding failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch finance data"})
			return
		}
	}
	c.JSON(http.StatusOK, ledger)
}

// putFinance replaces the singleton document wholesale. All three fields must
// decode as arrays.
func (s *Server) putFinance(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var payload struct {
		Accounts     *[]model.Account     `json:"accounts"`
		Transactions *[]model.Transaction `json:"transactions"`
		Categories   *[]model.Category    `json:"categories"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil ||
		payload.Accounts == nil || payload.Transactions == nil || payload.Categories == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}

	stored, err := s.repo.Replace(c.Request.Context(), model.Ledger{
		Accounts:     *payload.Accounts,
		Transactions: *payload.Transactions,
		Categories:   *payload.Categories,
	})
	if err != nil {
		log.Printf("PUT /api/finance failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save finance data"})
		return
	}
	c.JSON(http.StatusOK, stored)
}
