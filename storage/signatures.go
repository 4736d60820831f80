package storage

import "github.com/Randielfi/Sistema-Votacion-Blockchain/models"

// AttestationExists reports whether the exact (election, hash, key)
// triple was already recorded. The unique index remains the final
// guard; this check only produces the friendlier conflict message.
func (s *Store) AttestationExists(onChainID uint64, integrityHash, observerPublicKey string) (bool, error) {
	var count int64
	err := s.db.Model(&models.ElectionSignature{}).
		Where("election_on_chain_id = ? AND integrity_hash = ? AND observer_public_key = ?",
			onChainID, integrityHash, observerPublicKey).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAttestation persists an observer signature.
func (s *Store) CreateAttestation(signature *models.ElectionSignature) error {
	return s.db.Create(signature).Error
}

// AttestationsByElection lists an election's attestations oldest
// first.
func (s *Store) AttestationsByElection(onChainID uint64) ([]models.ElectionSignature, error) {
	var signatures []models.ElectionSignature
	err := s.db.
		Where("election_on_chain_id = ?", onChainID).
		Order("signed_at").
		Find(&signatures).Error
	if err != nil {
		return nil, err
	}
	return signatures, nil
}
