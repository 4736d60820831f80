// Package api is the HTTP/JSON surface. Handlers do request parsing
// and response shaping only; every rule lives in the service layer.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/auth"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/models"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/service"
)

type Server struct {
	auth       *service.AuthService
	elections  *service.ElectionService
	votes      *service.VoteService
	candidates *service.CandidateService
	tokens     *auth.TokenIssuer
	logger     *zap.Logger
}

func NewServer(
	authService *service.AuthService,
	elections *service.ElectionService,
	votes *service.VoteService,
	candidates *service.CandidateService,
	tokens *auth.TokenIssuer,
	logger *zap.Logger,
) *Server {
	return &Server{
		auth:       authService,
		elections:  elections,
		votes:      votes,
		candidates: candidates,
		tokens:     tokens,
		logger:     logger,
	}
}

// Handler builds the routed engine. CORS is layered on top by the
// caller, around the whole handler.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	root := r.Group("/api")

	authed := authRequired(s.tokens)
	admin := requireRole(models.RoleAdmin)

	ag := root.Group("/auth")
	{
		ag.POST("/register", s.handleRegister)
		ag.GET("/nonce", s.handleNonce)
		ag.POST("/login", s.handleLogin)
		ag.POST("/login-with-signature", s.handleLoginWithSignature)
	}

	eg := root.Group("/election")
	{
		eg.POST("/start", authed, admin, s.handleStartElection)
		eg.POST("/:id/end", authed, admin, s.handleEndElection)

		eg.GET("", authed, s.handleListElections)
		eg.GET("/finalizadas", s.handleFinalizedElections)
		eg.GET("/:id", authed, s.handleGetElection)
		eg.GET("/:id/candidates", authed, s.handleElectionCandidates)

		eg.GET("/:id/winner", s.handleWinner)
		eg.GET("/:id/results", s.handleResults)
		eg.GET("/:id/results-with-integrity", s.handleResultsWithIntegrity)
		eg.GET("/:id/status", s.handleStatus)
		eg.POST("/:id/sign-result", s.handleSignResult)
		eg.GET("/:id/signatures", s.handleSignatures)
	}

	vg := root.Group("/vote")
	{
		vg.POST("/submit", authed, s.handleSubmitVote)
		vg.GET("/has-voted", s.handleHasVoted)
	}

	cg := root.Group("/candidate")
	{
		cg.POST("", authed, admin, s.handleCreateCandidate)
		cg.GET("", authed, s.handleListCandidates)
		cg.GET("/:id", authed, s.handleGetCandidate)
	}

	return r
}
