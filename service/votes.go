package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/ledger"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/models"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/queues"
)

// How the vote transaction reaches the chain. In backend mode this
// service signs and submits it; in preconfirmed mode the wallet signed
// and submitted client-side before calling, and the backend only
// records the receipt. Preconfirmed weakens the server-side double-vote
// gate to the pre-submission check, so it is an explicit deployment
// decision, never a silent fallback.
const (
	SubmitModeBackend      = "backend"
	SubmitModePreconfirmed = "preconfirmed"
)

// VoteService runs the vote submission pipeline: local validation,
// live-status gate, positional translation, on-chain double-vote
// check, submission, anonymous receipt.
type VoteService struct {
	store      ElectionStore
	mapper     *IndexMapper
	ledger     LedgerClient
	alerts     *queues.AlertPublisher
	logger     *zap.Logger
	submitMode string
}

func NewVoteService(
	store ElectionStore,
	mapper *IndexMapper,
	ledgerClient LedgerClient,
	alerts *queues.AlertPublisher,
	logger *zap.Logger,
	submitMode string,
) *VoteService {
	if submitMode != SubmitModePreconfirmed {
		submitMode = SubmitModeBackend
	}
	return &VoteService{
		store:      store,
		mapper:     mapper,
		ledger:     ledgerClient,
		alerts:     alerts,
		logger:     logger,
		submitMode: submitMode,
	}
}

// Submit casts one vote. Any failure before the chain submission
// aborts with no local write; the receipt row is only ever inserted
// after a confirmed (or preconfirmed) on-chain vote.
func (s *VoteService) Submit(ctx context.Context, role, wallet string, candidateID uint, electionOnChainID uint64) error {
	if role != models.RoleVoter {
		return Forbidden("Solo los votantes pueden emitir votos.")
	}
	if wallet == "" || candidateID == 0 {
		return BadRequest("Faltan datos.")
	}

	election, err := s.store.ElectionByOnChainID(electionOnChainID)
	if err != nil {
		return ServerError("Error al procesar la solicitud.")
	}
	if election == nil {
		return BadRequest("La elección no está registrada localmente.")
	}

	// The contract is the authority on liveness: local flags do not
	// open a voting window the chain has closed.
	status, err := s.ledger.GetStatus(ctx, electionOnChainID)
	if err != nil {
		return ServerError("Error al procesar la solicitud.")
	}
	if status != nil && (!status.Started || status.Ended) {
		return BadRequest("La elección no está activa actualmente.")
	}

	position, found, err := s.mapper.Position(election.ID, candidateID)
	if err != nil {
		return ServerError("Error al procesar la solicitud.")
	}
	if !found {
		return BadRequest("El candidato no pertenece a esta elección.")
	}
	if status != nil && position >= status.CandidateCount {
		// Local mapping points past the contract's candidate array;
		// the mirror diverged from the chain.
		return BadRequest("Candidato no encontrado en la cadena.")
	}

	voted, err := s.ledger.HasVoted(ctx, electionOnChainID, wallet)
	if err != nil {
		s.logger.Warn("hasVoted check failed", zap.Uint64("electionIdOnChain", electionOnChainID), zap.Error(err))
	} else if voted {
		return BadRequest("Esta wallet ya ha votado en la cadena.")
	}

	if s.submitMode == SubmitModeBackend {
		if err := s.ledger.VoteFor(ctx, electionOnChainID, position, wallet); err != nil {
			s.logger.Error("on-chain vote failed",
				zap.Uint64("electionIdOnChain", electionOnChainID),
				zap.Int("candidateIndex", position),
				zap.Error(err))
			switch {
			case errors.Is(err, ledger.ErrRejected):
				return ServerError("El contrato rechazó el voto.")
			case errors.Is(err, ledger.ErrAmbiguous):
				return ServerError("No se pudo confirmar el voto en la cadena. Verifique antes de reintentar.")
			default:
				return ServerError("Error al emitir el voto en la cadena.")
			}
		}
	}

	if err := s.store.CreateVoteReceipt(election.ID); err != nil {
		// The vote is on-chain; only the local receipt is missing.
		detail := fmt.Sprintf("voto confirmado en la cadena pero sin recibo local: %v", err)
		s.logger.Error("ledger/local inconsistency detected",
			zap.String("kind", "vote_receipt"),
			zap.Uint64("electionIdOnChain", electionOnChainID),
			zap.String("detail", detail))
		if pubErr := s.alerts.Publish(queues.ReconciliationAlert{
			Kind:              "vote_receipt",
			ElectionOnChainID: electionOnChainID,
			Detail:            detail,
		}); pubErr != nil {
			s.logger.Error("failed to publish reconciliation alert", zap.Error(pubErr))
		}
		return ServerError("El voto fue emitido pero no se pudo guardar el recibo local.")
	}

	s.logger.Info("vote recorded",
		zap.Uint64("electionIdOnChain", electionOnChainID),
		zap.String("mode", s.submitMode))
	return nil
}

// HasVoted answers whether a wallet already voted in an election. The
// election must be mirrored locally; the answer itself comes from the
// chain.
func (s *VoteService) HasVoted(ctx context.Context, electionOnChainID uint64, wallet string) (bool, error) {
	if wallet == "" || electionOnChainID == 0 {
		return false, BadRequest("Parámetros inválidos.")
	}

	election, err := s.store.ElectionByOnChainID(electionOnChainID)
	if err != nil {
		return false, ServerError("Error al procesar la solicitud.")
	}
	if election == nil {
		return false, NotFound("La elección no está registrada localmente.")
	}

	voted, err := s.ledger.HasVoted(ctx, electionOnChainID, wallet)
	if err != nil {
		s.logger.Warn("hasVoted check failed", zap.Uint64("electionIdOnChain", electionOnChainID), zap.Error(err))
		return false, nil
	}
	return voted, nil
}
