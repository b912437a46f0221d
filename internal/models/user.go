package models

import (
	"github.com/golang-jwt/jwt/v4"
)

// User is an applicant account. Account management lives outside this
// service; we only read users to resolve conversation parties and label
// summaries.
type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" gorm:"uniqueIndex"`
}

// UserCompact is the trimmed representation embedded in conversation
// summaries.
type UserCompact struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:   u.ID,
		Name: u.FirstName + " " + u.LastName,
	}
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims.
// PartyKind records which side of a conversation the caller authenticated as.
type JwtCustomClaims struct {
	UserID    uint      `json:"user_id"`
	PartyKind PartyKind `json:"party_kind"`
	Email     string    `json:"email"`
	jwt.RegisteredClaims
}
