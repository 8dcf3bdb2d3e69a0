package repository

import "github.com/ramzib/dukan-pos/internal/domain/entity"

// UserRepository port de persistance des comptes utilisateur.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
