package models

import "time"

// Vote is an anonymous local receipt: it records that a confirmed
// on-chain vote happened for an election and when, nothing else. It
// deliberately carries no voter or candidate reference so the local
// store cannot correlate ballots beyond what the chain already exposes.
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ElectionID uint      `gorm:"not null;index" json:"idEleccion"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
}
