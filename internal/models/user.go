package models

import (
	"errors"
	"fmt"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole maps a stored or session value onto the closed Role set.
// Anything else, the empty string included, is an error.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:60;not null" json:"-"`
	Role         Role   `gorm:"type:varchar(5)" json:"role"`

	LikedVideos   []LikedVideo   `json:"-"`
	WatchedVideos []WatchedVideo `json:"-"`
}

// UserWithVideos is the full record returned to administrators.
type UserWithVideos struct {
	User
	LikedVideos   []LikedVideo   `json:"liked_videos"`
	WatchedVideos []WatchedVideo `json:"watched_videos"`
}
