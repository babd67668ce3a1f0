package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface.
type Repository struct {
	User  UserRepository
	Entry EntryRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:  NewUserRepo(db),
		Entry: NewEntryRepo(db),
	}
}
