package services

import (
	"context"
	"strings"

	"sparetime/internal/domain"
	"sparetime/internal/domain/models"
	"sparetime/internal/repositories"
	"sparetime/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// ProfileService manages the user profile: username, the interest set, and
// password changes. Interests use the same set semantics as the queue.
type ProfileService struct {
	Users     repositories.UserRepository
	RequestID string
}

func (s ProfileService) GetProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	return s.Users.Profile(ctx, userID)
}

// UpdateProfile applies a partial update: nil fields are left untouched.
func (s ProfileService) UpdateProfile(ctx context.Context, userID string, username *string, interests []string) (models.UserProfile, error) {
	if username != nil {
		name := strings.TrimSpace(*username)
		if name == "" {
			return models.UserProfile{}, domain.ValidationError{Field: "username", Msg: "must not be empty"}
		}
		if err := s.Users.UpdateUsername(ctx, userID, name); err != nil {
			return models.UserProfile{}, err
		}
	}
	if interests != nil {
		cleaned := make([]string, 0, len(interests))
		for _, in := range interests {
			if in = strings.TrimSpace(in); in != "" {
				cleaned = append(cleaned, in)
			}
		}
		if err := s.Users.ReplaceInterests(ctx, userID, cleaned); err != nil {
			return models.UserProfile{}, err
		}
	}

	utils.LogEvent(s.RequestID, "profile", "update", "user updated")
	return s.Users.Profile(ctx, userID)
}

// AddInterest adds one interest; adding an existing one reports false.
func (s ProfileService) AddInterest(ctx context.Context, userID, interest string) (bool, error) {
	interest = strings.TrimSpace(interest)
	if interest == "" {
		return false, domain.ValidationError{Field: "interest", Msg: "must not be empty"}
	}
	added, err := s.Users.AddInterest(ctx, userID, interest)
	if err != nil {
		return false, err
	}
	utils.LogEvent(s.RequestID, "profile", "add_interest", "added="+boolStr(added))
	return added, nil
}

// RemoveInterest removes one interest; removing an absent one reports false.
func (s ProfileService) RemoveInterest(ctx context.Context, userID, interest string) (bool, error) {
	interest = strings.TrimSpace(interest)
	if interest == "" {
		return false, domain.ValidationError{Field: "interest", Msg: "must not be empty"}
	}
	removed, err := s.Users.RemoveInterest(ctx, userID, interest)
	if err != nil {
		return false, err
	}
	utils.LogEvent(s.RequestID, "profile", "remove_interest", "removed="+boolStr(removed))
	return removed, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s ProfileService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return domain.ValidationError{Field: "newPassword", Msg: "must be at least 8 characters"}
	}

	hash, err := s.Users.PasswordHash(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(currentPassword)); err != nil {
		return domain.ValidationError{Field: "currentPassword", Msg: "current password is incorrect"}
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Msg: "failed to hash password", Err: err}
	}
	if err := s.Users.UpdatePassword(ctx, userID, string(newHash)); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "profile", "change_password", "password updated")
	return nil
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
