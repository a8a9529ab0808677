package database

import (
	"context"
	"fmt"

	"vidtrack/internal/models"

	"gorm.io/gorm"
)

type VideoStore struct {
	DB *gorm.DB
}

func NewVideoStore(db *gorm.DB) *VideoStore {
	return &VideoStore{DB: db}
}

// Add appends a video to the table selected by typ.
func (s *VideoStore) Add(ctx context.Context, userID uint, title string, videoID int, typ models.VideoType) (*models.Video, error) {
	db := s.DB.WithContext(ctx)

	switch typ {
	case models.VideoLiked:
		v := models.LikedVideo{Title: title, VideoID: videoID, UserID: userID}
		if err := db.Create(&v).Error; err != nil {
			return nil, err
		}
		return &models.Video{ID: v.ID, Title: v.Title, VideoID: v.VideoID, UserID: v.UserID, Type: typ}, nil
	case models.VideoWatched:
		v := models.WatchedVideo{Title: title, VideoID: videoID, UserID: userID}
		if err := db.Create(&v).Error; err != nil {
			return nil, err
		}
		return &models.Video{ID: v.ID, Title: v.Title, VideoID: v.VideoID, UserID: v.UserID, Type: typ}, nil
	}
	return nil, fmt.Errorf("%w: %q", models.ErrUnknownVideoType, typ)
}
