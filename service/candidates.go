package service

import (
	"strings"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/models"
)

// CandidateService is plain candidate administration; candidates are
// purely local records until an election freezes them into a position.
type CandidateService struct {
	store CandidateStore
}

func NewCandidateService(store CandidateStore) *CandidateService {
	return &CandidateService{store: store}
}

func (s *CandidateService) Create(firstName, lastName string) (*models.Candidate, error) {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, BadRequest("Nombre y apellido son obligatorios.")
	}
	candidate := models.Candidate{FirstName: firstName, LastName: lastName}
	if err := s.store.CreateCandidate(&candidate); err != nil {
		return nil, ServerError("Error al procesar la solicitud.")
	}
	return &candidate, nil
}

func (s *CandidateService) List() ([]models.Candidate, error) {
	candidates, err := s.store.Candidates()
	if err != nil {
		return nil, ServerError("Error al procesar la solicitud.")
	}
	return candidates, nil
}

func (s *CandidateService) Get(id uint) (*models.Candidate, error) {
	candidate, err := s.store.CandidateByID(id)
	if err != nil {
		return nil, ServerError("Error al procesar la solicitud.")
	}
	if candidate == nil {
		return nil, NotFound("Candidato no encontrado.")
	}
	return candidate, nil
}
