package service

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/auth"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/models"
)

// AuthService handles registration and the two login paths: password
// and wallet signature over a single-use nonce.
type AuthService struct {
	store  VoterStore
	tokens *auth.TokenIssuer
	logger *zap.Logger
}

func NewAuthService(store VoterStore, tokens *auth.TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{store: store, tokens: tokens, logger: logger}
}

// RegisterRequest carries a new voter registration.
type RegisterRequest struct {
	Cedula    string `json:"numeroCedula"`
	FirstName string `json:"nombres"`
	LastName  string `json:"apellidos"`
	Wallet    string `json:"wallet"`
	Password  string `json:"contraseña"`
}

// Register creates a voter account. Passwords are stored as bcrypt
// hashes, never compared as plain strings.
func (s *AuthService) Register(req RegisterRequest) error {
	if req.Cedula == "" || req.FirstName == "" || req.LastName == "" || req.Wallet == "" || req.Password == "" {
		return BadRequest("Faltan datos obligatorios.")
	}

	if !ValidCedula(req.Cedula) {
		return BadRequest("Número de cédula inválido. Solo se permiten cédulas dominicanas válidas.")
	}

	// Pre-checks for precise messages; the unique indexes stay the
	// authority under concurrency.
	if existing, err := s.store.VoterByWallet(req.Wallet); err != nil {
		return ServerError("Error al procesar la solicitud.")
	} else if existing != nil {
		return BadRequest("Esta wallet ya está registrada.")
	}
	if existing, err := s.store.VoterByCedula(req.Cedula); err != nil {
		return ServerError("Error al procesar la solicitud.")
	} else if existing != nil {
		return BadRequest("Este número de cédula ya está registrado.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return ServerError("Error al procesar la solicitud.")
	}

	voter := models.Voter{
		Cedula:       req.Cedula,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Wallet:       req.Wallet,
		PasswordHash: string(hash),
		Role:         models.RoleVoter,
	}
	if err := s.store.CreateVoter(&voter); err != nil {
		// Lost the race against a concurrent registration.
		s.logger.Warn("voter insert failed", zap.String("wallet", req.Wallet), zap.Error(err))
		return BadRequest("Esta wallet ya está registrada.")
	}

	s.logger.Info("voter registered", zap.String("wallet", req.Wallet))
	return nil
}

// Nonce issues a fresh single-use login challenge for the wallet.
func (s *AuthService) Nonce(wallet string) (string, error) {
	if wallet == "" {
		return "", BadRequest("Wallet requerida.")
	}

	voter, err := s.store.VoterByWallet(wallet)
	if err != nil {
		return "", ServerError("Error al procesar la solicitud.")
	}
	if voter == nil {
		return "", NotFound("Wallet no registrada.")
	}

	nonce := uuid.New().String()
	if err := s.store.SetVoterNonce(voter.ID, &nonce); err != nil {
		return "", ServerError("Error al procesar la solicitud.")
	}
	return nonce, nil
}

// Login authenticates by wallet and password and issues a session
// token.
func (s *AuthService) Login(wallet, password string) (string, error) {
	if wallet == "" || password == "" {
		return "", BadRequest("Faltan datos.")
	}

	voter, err := s.store.VoterByWallet(wallet)
	if err != nil {
		return "", ServerError("Error al procesar la solicitud.")
	}
	if voter == nil {
		return "", Unauthorized("Wallet no registrada.")
	}

	if bcrypt.CompareHashAndPassword([]byte(voter.PasswordHash), []byte(password)) != nil {
		return "", Unauthorized("Wallet y/o contraseña incorrecta.")
	}

	return s.issueToken(voter)
}

// LoginWithSignature authenticates by proving control of the wallet:
// the stored nonce must match and the signature must recover to the
// wallet over the literal nonce string. The nonce is cleared before
// the token is issued, so a captured signature cannot be replayed.
func (s *AuthService) LoginWithSignature(wallet, signature, nonce string) (string, error) {
	if wallet == "" || signature == "" || nonce == "" {
		return "", BadRequest("Faltan datos.")
	}

	voter, err := s.store.VoterByWallet(wallet)
	if err != nil {
		return "", ServerError("Error al procesar la solicitud.")
	}
	if voter == nil {
		return "", Unauthorized("Wallet no registrada.")
	}

	if voter.Nonce == nil || *voter.Nonce != nonce {
		return "", Unauthorized("Nonce inválido.")
	}

	if !auth.VerifySignature(wallet, signature, nonce) {
		return "", Unauthorized("Firma inválida.")
	}

	if err := s.store.SetVoterNonce(voter.ID, nil); err != nil {
		return "", ServerError("Error al procesar la solicitud.")
	}

	return s.issueToken(voter)
}

func (s *AuthService) issueToken(voter *models.Voter) (string, error) {
	token, err := s.tokens.Issue(voter)
	if err != nil {
		s.logger.Error("token issuance failed", zap.String("wallet", voter.Wallet), zap.Error(err))
		return "", ServerError("Error al procesar la solicitud.")
	}
	return token, nil
}
