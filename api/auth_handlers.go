package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/service"
)

func (s *Server) handleRegister(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"title": "Faltan datos obligatorios."})
		return
	}

	if err := s.auth.Register(req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registro exitoso."})
}

func (s *Server) handleNonce(c *gin.Context) {
	wallet := c.Query("wallet")

	nonce, err := s.auth.Nonce(wallet)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": wallet, "nonce": nonce})
}

type loginRequest struct {
	Wallet   string `json:"wallet"`
	Password string `json:"contraseña"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"title": "Faltan datos."})
		return
	}

	token, err := s.auth.Login(req.Wallet, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type signatureLoginRequest struct {
	Wallet    string `json:"wallet"`
	Signature string `json:"signature"`
	Nonce     string `json:"nonce"`
}

func (s *Server) handleLoginWithSignature(c *gin.Context) {
	var req signatureLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"title": "Faltan datos."})
		return
	}

	token, err := s.auth.LoginWithSignature(req.Wallet, req.Signature, req.Nonce)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
