package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type voteRequest struct {
	CandidateID uint   `json:"candidateId"`
	ElectionID  uint64 `json:"electionId"`
}

func (s *Server) handleSubmitVote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"title": "Faltan datos."})
		return
	}

	role := c.GetString(ctxRole)
	wallet := c.GetString(ctxWallet)
	if err := s.votes.Submit(c.Request.Context(), role, wallet, req.CandidateID, req.ElectionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Voto registrado correctamente."})
}

func (s *Server) handleHasVoted(c *gin.Context) {
	wallet := c.Query("wallet")
	electionID, err := strconv.ParseUint(c.Query("electionId"), 10, 64)
	if err != nil || wallet == "" {
		c.JSON(http.StatusBadRequest, gin.H{"title": "Parámetros inválidos."})
		return
	}

	voted, err := s.votes.HasVoted(c.Request.Context(), electionID, wallet)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"electionId": electionID,
		"wallet":     wallet,
		"hasVoted":   voted,
	})
}
