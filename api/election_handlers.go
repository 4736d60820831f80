package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/service"
)

func paramUint64(c *gin.Context, name string) (uint64, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"title": "Identificador inválido."})
		return 0, false
	}
	return value, true
}

type startElectionRequest struct {
	Title        string `json:"title"`
	CandidateIDs []uint `json:"candidateIds"`
}

func (s *Server) handleStartElection(c *gin.Context) {
	var req startElectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"title": "Debe proporcionar un título y al menos un candidato."})
		return
	}

	election, err := s.elections.Create(c.Request.Context(), req.Title, req.CandidateIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"idEleccion":        election.ID,
		"tituloEleccion":    election.Title,
		"electionIdOnChain": election.OnChainID,
	})
}

func (s *Server) handleEndElection(c *gin.Context) {
	id, ok := paramUint64(c, "id")
	if !ok {
		return
	}

	if err := s.elections.End(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Elección %d finalizada correctamente.", id)})
}

func (s *Server) handleListElections(c *gin.Context) {
	views, err := s.elections.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) handleFinalizedElections(c *gin.Context) {
	views, err := s.elections.Finalized(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) handleGetElection(c *gin.Context) {
	id, ok := paramUint64(c, "id")
	if !ok {
		return
	}

	view, err := s.elections.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleElectionCandidates(c *gin.Context) {
	id, ok := paramUint64(c, "id")
	if !ok {
		return
	}

	candidates, err := s.elections.Candidates(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

func (s *Server) handleWinner(c *gin.Context) {
	id, ok := paramUint64(c, "id")
	if !ok {
		return
	}

	winner, err := s.elections.Winner(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, winner)
}

func (s *Server) handleResults(c *gin.Context) {
	id, ok := paramUint64(c, "id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.elections.Results(c.Request.Context(), id))
}

func (s *Server) handleResultsWithIntegrity(c *gin.Context) {
	id, ok := paramUint64(c, "id")
	if !ok {
		return
	}

	results, err := s.elections.ResultsWithIntegrity(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) handleStatus(c *gin.Context) {
	id, ok := paramUint64(c, "id")
	if !ok {
		return
	}

	status, err := s.elections.Status(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if status == nil {
		c.JSON(http.StatusNotFound, gin.H{"title": fmt.Sprintf("No se encontró el estado de la elección con ID %d", id)})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleSignResult(c *gin.Context) {
	id, ok := paramUint64(c, "id")
	if !ok {
		return
	}

	var req service.SignResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"title": "Faltan datos obligatorios."})
		return
	}

	if err := s.elections.SignResult(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Firma registrada correctamente."})
}

func (s *Server) handleSignatures(c *gin.Context) {
	id, ok := paramUint64(c, "id")
	if !ok {
		return
	}

	signatures, err := s.elections.Signatures(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, signatures)
}
