package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Supported OAuth providers
const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
	ProviderGithub   = "github"
)

// Providers lists every provider the application can authenticate against,
// in registration order.
var Providers = []string{ProviderGoogle, ProviderFacebook, ProviderGithub}

// User represents an application user resolved from one or more OAuth providers.
// Each provider-linkage column is optional and, when present, unique: a given
// provider account maps to exactly one User.
type User struct {
	gorm.Model
	GoogleID   *string `gorm:"uniqueIndex:idx_users_google_id,where:google_id IS NOT NULL" json:"-"`
	FacebookID *string `gorm:"uniqueIndex:idx_users_facebook_id,where:facebook_id IS NOT NULL" json:"-"`
	GithubID   *string `gorm:"uniqueIndex:idx_users_github_id,where:github_id IS NOT NULL" json:"-"`
	Email      string  `gorm:"not null;index" json:"email"` // normalized lowercase
	Name       string  `gorm:"not null" json:"name"`
	Avatar     string  `gorm:"default:''" json:"avatar"`
	Provider   string  `gorm:"not null" json:"provider"` // provider of first sign-in

	// Raw profile payload from the most recent provider login, kept for
	// debugging linkage issues.
	Profile datatypes.JSON `json:"-"`
}

// ValidProvider reports whether name is one of the supported providers.
func ValidProvider(name string) bool {
	for _, p := range Providers {
		if p == name {
			return true
		}
	}
	return false
}

// LinkageID returns a pointer to the linkage column for the given provider,
// or nil for an unknown provider name.
func (u *User) LinkageID(provider string) **string {
	switch provider {
	case ProviderGoogle:
		return &u.GoogleID
	case ProviderFacebook:
		return &u.FacebookID
	case ProviderGithub:
		return &u.GithubID
	}
	return nil
}

// Projection is the user shape exposed through the API. Internal columns
// (linkage ids, raw profile) never leave the server.
type Projection struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Provider string `json:"provider"`
}

// Project returns the API projection of the user.
func (u *User) Project() Projection {
	return Projection{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Avatar:   u.Avatar,
		Provider: u.Provider,
	}
}
