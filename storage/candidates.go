package storage

import "github.com/Randielfi/Sistema-Votacion-Blockchain/models"

// CreateCandidate inserts a new candidate.
func (s *Store) CreateCandidate(candidate *models.Candidate) error {
	return s.db.Create(candidate).Error
}

// Candidates returns every registered candidate.
func (s *Store) Candidates() ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := s.db.Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

// CandidateByID returns one candidate, or nil when unknown.
func (s *Store) CandidateByID(id uint) (*models.Candidate, error) {
	var candidate models.Candidate
	err := s.db.First(&candidate, id).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &candidate, nil
}

// CandidatesByIDs loads the candidates for a set of ids, keyed by id.
// Missing ids are simply absent from the map; the caller decides
// whether that is an error.
func (s *Store) CandidatesByIDs(ids []uint) (map[uint]models.Candidate, error) {
	var candidates []models.Candidate
	if err := s.db.Where("id IN ?", ids).Find(&candidates).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}
	return byID, nil
}
