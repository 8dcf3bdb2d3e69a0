package entity

import "time"

// Rôles applicatifs.
const (
	RoleOwner  = "owner"  // gérant: accès complet
	RoleSeller = "seller" // vendeur: caisse et consultation
)

// User représente un compte utilisateur (une boutique par compte).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	ShopName     string
	Role         string // owner | seller
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
