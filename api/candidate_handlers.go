package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type createCandidateRequest struct {
	FirstName string `json:"nombres"`
	LastName  string `json:"apellidos"`
}

func (s *Server) handleCreateCandidate(c *gin.Context) {
	var req createCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"title": "Nombre y apellido son obligatorios."})
		return
	}

	candidate, err := s.candidates.Create(req.FirstName, req.LastName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

func (s *Server) handleListCandidates(c *gin.Context) {
	candidates, err := s.candidates.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

func (s *Server) handleGetCandidate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"title": "Identificador inválido."})
		return
	}

	candidate, err := s.candidates.Get(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}
