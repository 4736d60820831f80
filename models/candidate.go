package models

// Candidate is created by an administrator and may take part in any
// number of elections.
type Candidate struct {
	ID        uint   `gorm:"primaryKey" json:"idCandidato"`
	FirstName string `gorm:"size:100;not null" json:"nombres"`
	LastName  string `gorm:"size:100;not null" json:"apellidos"`
}

// FullName is the name the candidate is registered under on-chain.
func (c *Candidate) FullName() string {
	return c.FirstName + " " + c.LastName
}
