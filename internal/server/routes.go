package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lovejzzz/GrooveLounge/internal/economy"
	"github.com/lovejzzz/GrooveLounge/internal/game"
	"github.com/lovejzzz/GrooveLounge/internal/session"
)

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/boxes", s.handleBoxes)
	r.POST("/profiles", s.handleCreateProfile)
	r.GET("/profiles/:id", s.handleGetProfile)
	r.POST("/profiles/:id/open/:boxID", s.handleOpenBox)
	r.POST("/profiles/:id/claim", s.handleClaim)
	r.POST("/profiles/:id/discard", s.handleDiscard)
	r.POST("/profiles/:id/sell", s.handleSell)
	r.GET("/profiles/:id/collection", s.handleCollection)
	r.POST("/profiles/:id/developer", s.handleDeveloper)

	return r
}

func (s *Server) handleBoxes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"boxes": s.catalog.Boxes})
}

func (s *Server) handleCreateProfile(c *gin.Context) {
	id, sess, err := s.CreateProfile()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"profileId": id,
		"coins":     sess.Balance(),
	})
}

func (s *Server) handleGetProfile(c *gin.Context) {
	err := s.withProfile(c.Param("id"), func(sess *session.Session) error {
		c.JSON(http.StatusOK, gin.H{
			"coins":         sess.Balance(),
			"pendingCard":   sess.Pending(),
			"currentBox":    sess.CurrentBox(),
			"completedSets": sess.CompletedSets(),
			"totalCards":    sess.TotalCards(),
		})
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) handleOpenBox(c *gin.Context) {
	boxID := c.Param("boxID")
	err := s.withProfile(c.Param("id"), func(sess *session.Session) error {
		card, err := sess.OpenBox(boxID)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{
			"card":  card,
			"coins": sess.Balance(),
		})
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, game.ErrUnknownBox):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, economy.ErrInsufficientFunds):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) handleClaim(c *gin.Context) {
	err := s.withProfile(c.Param("id"), func(sess *session.Session) error {
		out := sess.Claim()
		c.JSON(http.StatusOK, gin.H{
			"outcome": out,
			"coins":   sess.Balance(),
		})
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) handleDiscard(c *gin.Context) {
	err := s.withProfile(c.Param("id"), func(sess *session.Session) error {
		sess.Discard()
		c.Status(http.StatusNoContent)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type sellRequest struct {
	Category game.Category `json:"category" binding:"required"`
	Type     string        `json:"type" binding:"required"`
	Rarity   game.Rarity   `json:"rarity" binding:"required"`
}

func (s *Server) handleSell(c *gin.Context) {
	var req sellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must carry category, type and rarity"})
		return
	}
	err := s.withProfile(c.Param("id"), func(sess *session.Session) error {
		out, err := sess.Sell(req.Category, req.Type, req.Rarity)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{
			"credited":       out.Credited,
			"setUncompleted": out.SetUncompleted,
			"coins":          sess.Balance(),
		})
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, session.ErrCannotSellLastCopy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) handleCollection(c *gin.Context) {
	err := s.withProfile(c.Param("id"), func(sess *session.Session) error {
		c.JSON(http.StatusOK, gin.H{"collection": sess.CollectionSnapshot()})
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type developerRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleDeveloper(c *gin.Context) {
	var req developerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must carry enabled"})
		return
	}
	err := s.withProfile(c.Param("id"), func(sess *session.Session) error {
		sess.SetDeveloperMode(req.Enabled)
		c.JSON(http.StatusOK, gin.H{"developerMode": sess.DeveloperMode()})
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
