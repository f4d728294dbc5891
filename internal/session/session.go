// Package session resolves the current principal and guarantees a Profile
// row exists for it. Handlers never see a user without a profile, so no
// fallback name maps are needed downstream.
package session

import (
	"errors"
	"strings"

	"github.com/forceboard-dev/forceboard/internal/models"
	"gorm.io/gorm"
)

// DisplayName picks the profile name for a user: the supplied full name,
// then the registration name, then the local part of the email before '@'.
func DisplayName(user models.User) string {
	if name := strings.TrimSpace(user.FullName); name != "" {
		return name
	}

	if name := strings.TrimSpace(user.Name); name != "" {
		return name
	}

	email := strings.TrimSpace(user.Email)
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}

	return email
}

// EnsureProfile fetches the profile for user, creating it on first touch.
func EnsureProfile(db *gorm.DB, user models.User) (models.Profile, error) {
	var profile models.Profile

	err := db.Where("user_id = ?", user.ID).First(&profile).Error

	if err == nil {
		return profile, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Profile{}, err
	}

	profile = models.Profile{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: DisplayName(user),
		Role:     models.DefaultProfileRole,
	}

	if err := db.Create(&profile).Error; err != nil {
		// A concurrent request may have created it between the lookup and
		// the insert; the unique index makes that safe to re-read.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if readErr := db.Where("user_id = ?", user.ID).First(&profile).Error; readErr == nil {
				return profile, nil
			}
		}
		return models.Profile{}, err
	}

	return profile, nil
}
