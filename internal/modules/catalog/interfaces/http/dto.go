package http

import (
	"github.com/mwesigwa/tunestream-backend/internal/modules/catalog/application"
	"github.com/mwesigwa/tunestream-backend/internal/modules/catalog/domain"
)

// TrackListResponse is the paginated payload for public track listings
type TrackListResponse struct {
	Tracks     []domain.AudioTrack    `json:"tracks"`
	Pagination application.Pagination `json:"pagination"`
}

// VideoListResponse is the paginated payload for public video listings
type VideoListResponse struct {
	Videos     []domain.Video         `json:"videos"`
	Pagination application.Pagination `json:"pagination"`
}
