package models

// Election is the local projection of an on-chain election. OnChainID
// is assigned exactly once, when the contract confirms the creation
// transaction, and never changes afterwards. Finalized only ever moves
// false -> true.
type Election struct {
	ID        uint   `gorm:"primaryKey" json:"idEleccion"`
	Title     string `gorm:"size:200;not null" json:"tituloEleccion"`
	OnChainID uint64 `gorm:"uniqueIndex;not null" json:"electionIdOnChain"`
	Started   bool   `json:"iniciada"`
	Finalized bool   `json:"terminada"`

	Candidates []ElectionCandidate `gorm:"foreignKey:ElectionID" json:"-"`
	Votes      []Vote              `gorm:"foreignKey:ElectionID" json:"-"`
}

// ElectionCandidate attaches a candidate to one election. Position is
// the candidate's 0-based slot in the on-chain candidate array: it is
// the order the candidate ids were submitted at creation time, and the
// contract never reorders it, so it must never be reassigned locally.
type ElectionCandidate struct {
	ElectionID  uint `gorm:"primaryKey;autoIncrement:false" json:"idEleccion"`
	CandidateID uint `gorm:"primaryKey;autoIncrement:false" json:"idCandidato"`
	Position    int  `gorm:"not null" json:"candidateIndex"`

	Candidate Candidate `gorm:"foreignKey:CandidateID" json:"-"`
}
