package service

import (
	"context"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/ledger"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/models"
)

// LedgerClient is the narrow contract-adapter surface the services
// depend on. The reads are idempotent; StartElection, EndElection and
// VoteFor are not and are never retried blindly.
type LedgerClient interface {
	StartElection(ctx context.Context, title string, candidateNames []string) (uint64, error)
	EndElection(ctx context.Context, electionID uint64) error
	GetStatus(ctx context.Context, electionID uint64) (*ledger.ElectionStatus, error)
	GetResults(ctx context.Context, electionID uint64) ([]ledger.ResultEntry, error)
	HasVoted(ctx context.Context, electionID uint64, address string) (bool, error)
	GetWinner(ctx context.Context, electionID uint64) (*ledger.Winner, error)
	VoteFor(ctx context.Context, electionID uint64, candidateIndex int, voterAddress string) error
}

// VoterStore is the identity slice of the relational store.
type VoterStore interface {
	CreateVoter(voter *models.Voter) error
	VoterByWallet(wallet string) (*models.Voter, error)
	VoterByCedula(cedula string) (*models.Voter, error)
	SetVoterNonce(voterID uint, nonce *string) error
}

// CandidateStore is the candidate-administration slice.
type CandidateStore interface {
	CreateCandidate(candidate *models.Candidate) error
	Candidates() ([]models.Candidate, error)
	CandidateByID(id uint) (*models.Candidate, error)
	CandidatesByIDs(ids []uint) (map[uint]models.Candidate, error)
}

// ElectionStore is the election-mirror slice. CreateElection must be
// transactional: either the election row and every candidate position
// land, or none do.
type ElectionStore interface {
	CreateElection(election *models.Election, candidateIDs []uint) error
	ElectionByOnChainID(onChainID uint64) (*models.Election, error)
	ElectionByID(id uint) (*models.Election, error)
	Elections() ([]models.Election, error)
	FinalizedElections() ([]models.Election, error)
	MarkElectionFinalized(id uint) error
	CandidatePosition(electionID, candidateID uint) (position int, found bool, err error)
	ElectionCandidates(electionID uint) ([]models.ElectionCandidate, error)
	CreateVoteReceipt(electionID uint) error
}

// AttestationStore is the observer-signature slice.
type AttestationStore interface {
	AttestationExists(onChainID uint64, integrityHash, observerPublicKey string) (bool, error)
	CreateAttestation(signature *models.ElectionSignature) error
	AttestationsByElection(onChainID uint64) ([]models.ElectionSignature, error)
}
