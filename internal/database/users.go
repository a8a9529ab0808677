package database

import (
	"context"
	"errors"

	"vidtrack/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserStore is the gorm-backed credential store.
type UserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{DB: db}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts u and fills in its ID. An existing email yields ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	db := s.DB.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}

	if err := db.Create(u).Error; err != nil {
		// lost a race with a concurrent sign-up
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// WithVideos loads a user together with both video lists.
func (s *UserStore) WithVideos(ctx context.Context, id uint) (*models.UserWithVideos, error) {
	var user models.User
	err := s.DB.WithContext(ctx).
		Preload("LikedVideos").
		Preload("WatchedVideos").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	out := &models.UserWithVideos{
		User:          user,
		LikedVideos:   user.LikedVideos,
		WatchedVideos: user.WatchedVideos,
	}
	if out.LikedVideos == nil {
		out.LikedVideos = []models.LikedVideo{}
	}
	if out.WatchedVideos == nil {
		out.WatchedVideos = []models.WatchedVideo{}
	}
	return out, nil
}
