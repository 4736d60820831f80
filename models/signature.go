package models

import "time"

// ElectionSignature is an observer's attestation over one integrity
// hash of one election's results. The composite unique index closes
// the race between two concurrent submissions of the same attestation:
// one observer signs a given result hash at most once, but a new hash
// (results changed) takes a fresh signature.
type ElectionSignature struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ElectionOnChainID uint64    `gorm:"not null;uniqueIndex:idx_attestation" json:"electionIdOnChain"`
	IntegrityHash     string    `gorm:"size:128;not null;uniqueIndex:idx_attestation" json:"integrityHash"`
	ObserverName      string    `gorm:"size:200;not null" json:"observerName"`
	ObserverPublicKey string    `gorm:"size:200;not null;uniqueIndex:idx_attestation" json:"observerPublicKey"`
	ObserverSignature string    `gorm:"not null" json:"observerSignature"`
	SignedAt          time.Time `gorm:"not null" json:"fechaFirma"`
}
