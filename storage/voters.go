package storage

import (
	"fmt"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/models"
)

// CreateVoter inserts a new voter. Duplicate wallet or cedula surfaces
// as a duplicate-key error (see IsDuplicate).
func (s *Store) CreateVoter(voter *models.Voter) error {
	return s.db.Create(voter).Error
}

// VoterByWallet returns the voter owning the wallet, or nil.
func (s *Store) VoterByWallet(wallet string) (*models.Voter, error) {
	var voter models.Voter
	err := s.db.Where("wallet = ?", wallet).First(&voter).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &voter, nil
}

// VoterByCedula returns the voter registered under the cedula, or nil.
func (s *Store) VoterByCedula(cedula string) (*models.Voter, error) {
	var voter models.Voter
	err := s.db.Where("cedula = ?", cedula).First(&voter).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &voter, nil
}

// SetVoterNonce stores the login nonce, or clears it when nonce is nil.
func (s *Store) SetVoterNonce(voterID uint, nonce *string) error {
	err := s.db.Model(&models.Voter{}).Where("id = ?", voterID).Update("nonce", nonce).Error
	if err != nil {
		return fmt.Errorf("failed to update nonce for voter %d: %w", voterID, err)
	}
	return nil
}
