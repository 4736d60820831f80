package storage

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/models"
)

// CreateElection persists the local mirror of a freshly created
// on-chain election together with its candidate positions, in one
// transaction. candidateIDs must be in submission order: position i is
// candidate i, matching the contract's candidate array. This runs only
// after the chain confirmed the creation, never before.
func (s *Store) CreateElection(election *models.Election, candidateIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(election).Error; err != nil {
			return fmt.Errorf("failed to insert election: %w", err)
		}
		for i, candidateID := range candidateIDs {
			ec := models.ElectionCandidate{
				ElectionID:  election.ID,
				CandidateID: candidateID,
				Position:    i,
			}
			if err := tx.Create(&ec).Error; err != nil {
				return fmt.Errorf("failed to insert candidate %d at position %d: %w", candidateID, i, err)
			}
		}
		return nil
	})
}

// ElectionByOnChainID resolves the local mirror of an on-chain
// election, or nil when it was never registered locally.
func (s *Store) ElectionByOnChainID(onChainID uint64) (*models.Election, error) {
	var election models.Election
	err := s.db.Where("on_chain_id = ?", onChainID).First(&election).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &election, nil
}

// Elections returns every local election with its candidates loaded in
// position order.
func (s *Store) Elections() ([]models.Election, error) {
	var elections []models.Election
	err := s.db.
		Preload("Candidates", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Candidates.Candidate").
		Find(&elections).Error
	if err != nil {
		return nil, err
	}
	return elections, nil
}

// ElectionByID returns one local election with candidates, or nil.
func (s *Store) ElectionByID(id uint) (*models.Election, error) {
	var election models.Election
	err := s.db.
		Preload("Candidates", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Candidates.Candidate").
		First(&election, id).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &election, nil
}

// FinalizedElections lists the elections marked finalized locally.
// The flag is a listing filter only; live status always comes from the
// contract.
func (s *Store) FinalizedElections() ([]models.Election, error) {
	var elections []models.Election
	err := s.db.
		Where("finalized = ?", true).
		Preload("Candidates", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Candidates.Candidate").
		Find(&elections).Error
	if err != nil {
		return nil, err
	}
	return elections, nil
}

// MarkElectionFinalized flips the monotonic finalized flag. There is no
// way back to false.
func (s *Store) MarkElectionFinalized(id uint) error {
	return s.db.Model(&models.Election{}).Where("id = ?", id).Update("finalized", true).Error
}

// CandidatePosition returns the slot of a candidate inside one
// election's on-chain candidate array. found is false when the
// candidate was never attached to the election.
func (s *Store) CandidatePosition(electionID, candidateID uint) (position int, found bool, err error) {
	var ec models.ElectionCandidate
	err = s.db.
		Where("election_id = ? AND candidate_id = ?", electionID, candidateID).
		First(&ec).Error
	if err != nil {
		return 0, false, notFoundAsNil(err)
	}
	return ec.Position, true, nil
}

// ElectionCandidates lists an election's candidates in position order.
func (s *Store) ElectionCandidates(electionID uint) ([]models.ElectionCandidate, error) {
	var list []models.ElectionCandidate
	err := s.db.
		Where("election_id = ?", electionID).
		Preload("Candidate").
		Order("position").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// CreateVoteReceipt records that one confirmed on-chain vote happened.
func (s *Store) CreateVoteReceipt(electionID uint) error {
	vote := models.Vote{ElectionID: electionID, Timestamp: time.Now().UTC()}
	return s.db.Create(&vote).Error
}
