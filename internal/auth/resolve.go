package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/markbates/goth"
	"github.com/snapseek/api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Profile is the provider-independent identity extracted from an OAuth
// exchange, with all fallbacks already applied. No User row is created
// until every required field here is resolved.
type Profile struct {
	Provider       string
	ProviderUserID string
	Email          string
	Name           string
	Avatar         string
	Raw            datatypes.JSON
}

// NewProfile normalizes a goth user into a Profile. Email falls back to
// {providerUserID}@{provider}.local when the provider omits it; name falls
// back to the provider nickname, then to the email local part.
func NewProfile(gothUser goth.User) (Profile, error) {
	if !models.ValidProvider(gothUser.Provider) {
		return Profile{}, fmt.Errorf("unsupported provider %q", gothUser.Provider)
	}
	if gothUser.UserID == "" {
		return Profile{}, fmt.Errorf("provider %s returned no user id", gothUser.Provider)
	}

	email := strings.ToLower(strings.TrimSpace(gothUser.Email))
	if email == "" {
		email = fmt.Sprintf("%s@%s.local", gothUser.UserID, gothUser.Provider)
	}

	name := strings.TrimSpace(gothUser.Name)
	if name == "" {
		name = strings.TrimSpace(gothUser.NickName)
	}
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	var raw datatypes.JSON
	if gothUser.RawData != nil {
		if b, err := json.Marshal(gothUser.RawData); err == nil {
			raw = b
		}
	}

	return Profile{
		Provider:       gothUser.Provider,
		ProviderUserID: gothUser.UserID,
		Email:          email,
		Name:           name,
		Avatar:         gothUser.AvatarURL,
		Raw:            raw,
	}, nil
}

// ResolveUser maps a provider profile to a local User with an ordered
// policy: match the provider-linkage column first, then the normalized
// email (linking the new provider onto the existing account), and only
// then create a new User. The unique linkage indexes make concurrent
// first logins for the same provider account collapse to one row.
func ResolveUser(db *gorm.DB, p Profile) (*models.User, error) {
	linkColumn := p.Provider + "_id"

	// 1. Existing linkage for this provider account.
	var user models.User
	err := db.Where(linkColumn+" = ?", p.ProviderUserID).First(&user).Error
	if err == nil {
		updates := map[string]any{"profile": p.Raw}
		if p.Avatar != "" {
			updates["avatar"] = p.Avatar
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to refresh user: %w", err)
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up linkage: %w", err)
	}

	// 2. Same email under another provider: link this provider onto it.
	err = db.Where("email = ?", p.Email).First(&user).Error
	if err == nil {
		updates := map[string]any{
			linkColumn: p.ProviderUserID,
			"profile":  p.Raw,
		}
		if p.Avatar != "" {
			updates["avatar"] = p.Avatar
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to link provider: %w", err)
		}
		if link := user.LinkageID(p.Provider); link != nil {
			id := p.ProviderUserID
			*link = &id
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	// 3. Brand-new identity.
	providerID := p.ProviderUserID
	user = models.User{
		Email:    p.Email,
		Name:     p.Name,
		Avatar:   p.Avatar,
		Provider: p.Provider,
		Profile:  p.Raw,
	}
	if link := user.LinkageID(p.Provider); link != nil {
		*link = &providerID
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}
