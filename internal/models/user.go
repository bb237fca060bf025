package models

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	Name         string
	Enabled      bool
	RegisteredAt time.Time
	UpdatedAt    time.Time
}
