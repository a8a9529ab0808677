package models

import (
	"errors"
	"fmt"
)

type VideoType string

const (
	VideoLiked   VideoType = "liked"
	VideoWatched VideoType = "watched"
)

var ErrUnknownVideoType = errors.New("unknown video type")

func ParseVideoType(s string) (VideoType, error) {
	switch VideoType(s) {
	case VideoLiked:
		return VideoLiked, nil
	case VideoWatched:
		return VideoWatched, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVideoType, s)
}

type LikedVideo struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"type:text;not null" json:"title"`
	VideoID int    `gorm:"not null" json:"video_id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
}

type WatchedVideo struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"type:text;not null" json:"title"`
	VideoID int    `gorm:"not null" json:"video_id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
}

// Video is the response shape for either table.
type Video struct {
	ID      uint      `json:"id"`
	Title   string    `json:"title"`
	VideoID int       `json:"video_id"`
	UserID  uint      `json:"user_id"`
	Type    VideoType `json:"type"`
}
