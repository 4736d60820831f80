package models

// Roles a voter account can hold. Observers only attest results; they
// never cast votes.
const (
	RoleVoter    = "Voter"
	RoleAdmin    = "Admin"
	RoleObserver = "Observer"
)

// Voter is the identity record behind a registered wallet. Wallet and
// Cedula are globally unique; the database indexes are the authority,
// the service-level checks exist only for friendlier error messages.
type Voter struct {
	ID           uint    `gorm:"primaryKey" json:"idVotante"`
	Cedula       string  `gorm:"size:20;uniqueIndex;not null" json:"numeroCedula"`
	FirstName    string  `gorm:"size:100;not null" json:"nombres"`
	LastName     string  `gorm:"size:100;not null" json:"apellidos"`
	Wallet       string  `gorm:"size:100;uniqueIndex;not null" json:"wallet"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Role         string  `gorm:"size:20;not null;default:Voter" json:"role"`
	Nonce        *string `gorm:"size:100" json:"-"`
}

// FullName is the display name carried in session tokens.
func (v *Voter) FullName() string {
	return v.FirstName + " " + v.LastName
}
