package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/auth"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/ledger"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/models"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/queues"
)

// Election lifecycle states as shown to users. Purely derived from the
// contract's two booleans; local flags never override them.
const (
	EstadoDesconocido = "Desconocido"
	EstadoNoIniciada  = "No iniciada"
	EstadoActivo      = "Activo"
	EstadoFinalizada  = "Finalizada"
)

// ElectionService is the reconciliation core: it composes contract
// writes with local mirror writes so that the mirror never references
// an election the chain does not have, and it blends both sources into
// the unified read model (status, results, winner, integrity hash,
// attestations).
type ElectionService struct {
	store        ElectionStore
	candidates   CandidateStore
	attestations AttestationStore
	ledger       LedgerClient
	alerts       *queues.AlertPublisher
	logger       *zap.Logger
}

func NewElectionService(
	store ElectionStore,
	candidates CandidateStore,
	attestations AttestationStore,
	ledgerClient LedgerClient,
	alerts *queues.AlertPublisher,
	logger *zap.Logger,
) *ElectionService {
	return &ElectionService{
		store:        store,
		candidates:   candidates,
		attestations: attestations,
		ledger:       ledgerClient,
		alerts:       alerts,
		logger:       logger,
	}
}

// CandidateView is a candidate as shown inside election listings.
type CandidateView struct {
	ID             uint   `json:"id"`
	Name           string `json:"nombre"`
	CandidateIndex int    `json:"candidateIndex"`
}

// ElectionView is the unified local+chain view of one election.
type ElectionView struct {
	ID         uint            `json:"idEleccion"`
	Title      string          `json:"tituloEleccion"`
	OnChainID  uint64          `json:"electionIdOnChain"`
	Estado     string          `json:"estado"`
	Candidates []CandidateView `json:"candidatos"`
}

// IntegrityResults couples a tally with the hash observers attest to.
type IntegrityResults struct {
	Results       []ledger.ResultEntry `json:"results"`
	IntegrityHash string               `json:"integrityHash"`
}

// WinnerView is the winner response shape.
type WinnerView struct {
	Winner  *string `json:"winner"`
	Votes   int     `json:"votes"`
	IsTie   bool    `json:"isTie"`
	Message string  `json:"message"`
}

// SignResultRequest is an observer's attestation submission.
type SignResultRequest struct {
	IntegrityHash     string `json:"integrityHash"`
	ObserverName      string `json:"observerName"`
	ObserverPublicKey string `json:"observerPublicKey"`
	ObserverSignature string `json:"observerSignature"`
}

// Create starts an election on the contract and mirrors it locally.
// The candidate ids define the on-chain candidate order: position i is
// the i-th id of the request, and that mapping is frozen forever at
// this point. The contract write strictly precedes any local write, so
// a rejected transaction leaves zero local rows.
func (s *ElectionService) Create(ctx context.Context, title string, candidateIDs []uint) (*models.Election, error) {
	if strings.TrimSpace(title) == "" || len(candidateIDs) == 0 {
		return nil, BadRequest("Debe proporcionar un título y al menos un candidato.")
	}

	seen := make(map[uint]bool, len(candidateIDs))
	for _, id := range candidateIDs {
		if seen[id] {
			return nil, BadRequest("La lista de candidatos contiene duplicados.")
		}
		seen[id] = true
	}

	byID, err := s.candidates.CandidatesByIDs(candidateIDs)
	if err != nil {
		return nil, ServerError("Error al procesar la solicitud.")
	}

	names := make([]string, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		candidate, ok := byID[id]
		if !ok {
			return nil, BadRequest(fmt.Sprintf("El candidato %d no existe.", id))
		}
		names = append(names, candidate.FullName())
	}

	onChainID, err := s.ledger.StartElection(ctx, title, names)
	if err != nil {
		s.logger.Error("on-chain election creation failed", zap.String("title", title), zap.Error(err))
		if errors.Is(err, ledger.ErrAmbiguous) {
			return nil, ServerError("No se pudo confirmar la creación de la elección en la cadena. Verifique el estado antes de reintentar.")
		}
		return nil, ServerError("Error al iniciar la elección en el contrato.")
	}

	election := models.Election{
		Title:     title,
		OnChainID: onChainID,
		Started:   true,
	}
	if err := s.store.CreateElection(&election, candidateIDs); err != nil {
		// The election exists on-chain with no local mirror. Flag it;
		// pretending nothing happened would hide the divergence.
		s.reportInconsistency("election_create", onChainID,
			fmt.Sprintf("elección %q creada en la cadena pero sin registro local: %v", title, err))
		return nil, ServerError(fmt.Sprintf(
			"La elección fue creada en la cadena (ID %d) pero no se pudo registrar localmente.", onChainID))
	}

	s.logger.Info("election created",
		zap.String("title", title),
		zap.Uint64("electionIdOnChain", onChainID),
		zap.Int("candidates", len(candidateIDs)))
	return &election, nil
}

// End finalizes an election: contract first, local flag second. A
// contract failure leaves the local mirror untouched.
func (s *ElectionService) End(ctx context.Context, onChainID uint64) error {
	if err := s.ledger.EndElection(ctx, onChainID); err != nil {
		s.logger.Error("on-chain election end failed", zap.Uint64("electionIdOnChain", onChainID), zap.Error(err))
		if errors.Is(err, ledger.ErrAmbiguous) {
			return ServerError(fmt.Sprintf(
				"No se pudo confirmar la finalización de la elección %d en la cadena. Verifique el estado antes de reintentar.", onChainID))
		}
		return ServerError(fmt.Sprintf("No se pudo finalizar la elección %d en la blockchain.", onChainID))
	}

	election, err := s.store.ElectionByOnChainID(onChainID)
	if err != nil || election == nil {
		if err == nil {
			// Ended on-chain but never mirrored locally; nothing to flip.
			return nil
		}
		s.reportInconsistency("election_end", onChainID,
			fmt.Sprintf("elección finalizada en la cadena pero fallo al leer el registro local: %v", err))
		return nil
	}

	if err := s.store.MarkElectionFinalized(election.ID); err != nil {
		s.reportInconsistency("election_end", onChainID,
			fmt.Sprintf("elección finalizada en la cadena pero sin marca local: %v", err))
	}
	return nil
}

// Status returns the contract's live status, nil when the contract
// does not know the election.
func (s *ElectionService) Status(ctx context.Context, onChainID uint64) (*ledger.ElectionStatus, error) {
	status, err := s.ledger.GetStatus(ctx, onChainID)
	if err != nil {
		return nil, ServerError("Error al procesar la solicitud.")
	}
	return status, nil
}

// StatusText derives the display state from the contract booleans. It
// is a pure function of its input: no local flag participates.
func StatusText(status *ledger.ElectionStatus) string {
	switch {
	case status == nil:
		return EstadoDesconocido
	case status.Ended:
		return EstadoFinalizada
	case status.Started:
		return EstadoActivo
	default:
		return EstadoNoIniciada
	}
}

// Results returns the live tally. Read failures degrade to an empty
// list: the public results view polls and a transient RPC hiccup is
// not an error page.
func (s *ElectionService) Results(ctx context.Context, onChainID uint64) []ledger.ResultEntry {
	results, err := s.ledger.GetResults(ctx, onChainID)
	if err != nil {
		s.logger.Warn("results read failed", zap.Uint64("electionIdOnChain", onChainID), zap.Error(err))
		return []ledger.ResultEntry{}
	}
	return results
}

// IntegrityHash computes the canonical digest of a tally: SHA-256 over
// "name:votes;" per entry in the exact order the contract returned
// them, lowercase hex. Re-sorting before hashing would break
// verifiability against the raw on-chain read, so nothing here sorts.
func IntegrityHash(results []ledger.ResultEntry) string {
	var sb strings.Builder
	for _, entry := range results {
		sb.WriteString(entry.CandidateName)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(entry.Votes))
		sb.WriteString(";")
	}
	digest := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(digest[:])
}

// ResultsWithIntegrity returns the tally plus the hash observers sign.
func (s *ElectionService) ResultsWithIntegrity(ctx context.Context, onChainID uint64) (*IntegrityResults, error) {
	results, err := s.ledger.GetResults(ctx, onChainID)
	if err != nil {
		s.logger.Error("integrity results read failed", zap.Uint64("electionIdOnChain", onChainID), zap.Error(err))
		return nil, ServerError("Error al procesar la solicitud.")
	}
	return &IntegrityResults{
		Results:       results,
		IntegrityHash: IntegrityHash(results),
	}, nil
}

// Winner returns the contract's decision, gated on the election having
// ended: before that there is no winner to fabricate.
func (s *ElectionService) Winner(ctx context.Context, onChainID uint64) (*WinnerView, error) {
	status, err := s.ledger.GetStatus(ctx, onChainID)
	if err != nil || status == nil || !status.Ended {
		return nil, BadRequest("La elección aún no ha finalizado o no se pudo obtener el ganador.")
	}

	winner, err := s.ledger.GetWinner(ctx, onChainID)
	if err != nil {
		s.logger.Error("winner read failed", zap.Uint64("electionIdOnChain", onChainID), zap.Error(err))
		return nil, BadRequest("La elección aún no ha finalizado o no se pudo obtener el ganador.")
	}

	if winner.IsTie {
		return &WinnerView{IsTie: true, Message: "Empate entre candidatos. No hay un ganador claro."}, nil
	}
	if strings.TrimSpace(winner.Name) == "" {
		return &WinnerView{Votes: winner.Votes, Message: "No hay votos registrados."}, nil
	}
	name := winner.Name
	return &WinnerView{
		Winner:  &name,
		Votes:   winner.Votes,
		IsTie:   false,
		Message: fmt.Sprintf("El ganador es %s con %d votos.", winner.Name, winner.Votes),
	}, nil
}

// SignResult records an observer attestation over one integrity hash.
// One observer signs a given (election, hash) at most once; a changed
// hash requires a fresh signature. The signature must recover to the
// claimed key over the fixed integrity message template.
func (s *ElectionService) SignResult(ctx context.Context, onChainID uint64, req SignResultRequest) error {
	if req.IntegrityHash == "" || req.ObserverPublicKey == "" || req.ObserverSignature == "" {
		return BadRequest("Faltan datos obligatorios.")
	}

	exists, err := s.attestations.AttestationExists(onChainID, req.IntegrityHash, req.ObserverPublicKey)
	if err != nil {
		return ServerError("Error al procesar la solicitud.")
	}
	if exists {
		return Conflict("Este observador ya ha firmado este resultado.")
	}

	message := auth.IntegrityMessagePrefix + req.IntegrityHash
	recovered, err := auth.RecoverAddress(message, req.ObserverSignature)
	if err != nil {
		return BadRequest(fmt.Sprintf("Error al validar firma: %v", err))
	}
	if !strings.EqualFold(recovered, req.ObserverPublicKey) {
		return BadRequest(fmt.Sprintf(
			"Firma no válida. La firma corresponde a %s, pero se esperaba %s", recovered, req.ObserverPublicKey))
	}

	signature := models.ElectionSignature{
		ElectionOnChainID: onChainID,
		IntegrityHash:     req.IntegrityHash,
		ObserverName:      req.ObserverName,
		ObserverPublicKey: req.ObserverPublicKey,
		ObserverSignature: req.ObserverSignature,
		SignedAt:          time.Now().UTC(),
	}
	if err := s.attestations.CreateAttestation(&signature); err != nil {
		// The unique index closes the race two concurrent submissions
		// of the same triple can win only once.
		return Conflict("Este observador ya ha firmado este resultado.")
	}

	s.logger.Info("attestation recorded",
		zap.Uint64("electionIdOnChain", onChainID),
		zap.String("observer", req.ObserverPublicKey))
	return nil
}

// Signatures lists an election's attestations oldest first.
func (s *ElectionService) Signatures(ctx context.Context, onChainID uint64) ([]models.ElectionSignature, error) {
	signatures, err := s.attestations.AttestationsByElection(onChainID)
	if err != nil {
		return nil, ServerError("Error al procesar la solicitud.")
	}
	return signatures, nil
}

// List returns all local elections with their live state blended in.
func (s *ElectionService) List(ctx context.Context) ([]ElectionView, error) {
	elections, err := s.store.Elections()
	if err != nil {
		return nil, ServerError("Error al procesar la solicitud.")
	}

	views := make([]ElectionView, 0, len(elections))
	for i := range elections {
		views = append(views, s.view(ctx, &elections[i], true))
	}
	return views, nil
}

// Get returns one election's unified view by local id.
func (s *ElectionService) Get(ctx context.Context, id uint) (*ElectionView, error) {
	election, err := s.store.ElectionByID(id)
	if err != nil {
		return nil, ServerError("Error al procesar la solicitud.")
	}
	if election == nil {
		return nil, NotFound("Elección no encontrada.")
	}
	view := s.view(ctx, election, true)
	return &view, nil
}

// Finalized lists elections flagged finalized locally. The flag is an
// auxiliary filter; the live state still comes from the contract on
// the detail views.
func (s *ElectionService) Finalized(ctx context.Context) ([]ElectionView, error) {
	elections, err := s.store.FinalizedElections()
	if err != nil {
		return nil, ServerError("Error al procesar la solicitud.")
	}

	views := make([]ElectionView, 0, len(elections))
	for i := range elections {
		views = append(views, s.view(ctx, &elections[i], false))
	}
	return views, nil
}

// Candidates lists an election's candidates in on-chain order.
func (s *ElectionService) Candidates(ctx context.Context, electionID uint) ([]CandidateView, error) {
	list, err := s.store.ElectionCandidates(electionID)
	if err != nil {
		return nil, ServerError("Error al procesar la solicitud.")
	}
	views := make([]CandidateView, 0, len(list))
	for _, ec := range list {
		views = append(views, CandidateView{
			ID:             ec.CandidateID,
			Name:           ec.Candidate.FullName(),
			CandidateIndex: ec.Position,
		})
	}
	return views, nil
}

func (s *ElectionService) view(ctx context.Context, election *models.Election, withStatus bool) ElectionView {
	view := ElectionView{
		ID:         election.ID,
		Title:      election.Title,
		OnChainID:  election.OnChainID,
		Candidates: make([]CandidateView, 0, len(election.Candidates)),
	}
	for _, ec := range election.Candidates {
		view.Candidates = append(view.Candidates, CandidateView{
			ID:             ec.CandidateID,
			Name:           ec.Candidate.FullName(),
			CandidateIndex: ec.Position,
		})
	}
	if withStatus {
		status, _ := s.ledger.GetStatus(ctx, election.OnChainID)
		view.Estado = StatusText(status)
	}
	return view
}

func (s *ElectionService) reportInconsistency(kind string, onChainID uint64, detail string) {
	s.logger.Error("ledger/local inconsistency detected",
		zap.String("kind", kind),
		zap.Uint64("electionIdOnChain", onChainID),
		zap.String("detail", detail))
	if err := s.alerts.Publish(queues.ReconciliationAlert{
		Kind:              kind,
		ElectionOnChainID: onChainID,
		Detail:            detail,
	}); err != nil {
		s.logger.Error("failed to publish reconciliation alert", zap.Error(err))
	}
}
