package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mwesigwa/tunestream-backend/internal/modules/catalog/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Pagination describes one page of a listing with its true total
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// CatalogService exposes the catalog operations to the HTTP boundary
type CatalogService struct {
	tracks domain.TrackRepository
	videos domain.VideoRepository
	genres domain.GenreRepository
	albums domain.AlbumRepository
}

func NewCatalogService(tracks domain.TrackRepository, videos domain.VideoRepository, genres domain.GenreRepository, albums domain.AlbumRepository) *CatalogService {
	return &CatalogService{tracks: tracks, videos: videos, genres: genres, albums: albums}
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

func buildPagination(page, pageSize, total int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}

// ListTracks returns one page of public tracks, newest first
func (s *CatalogService) ListTracks(ctx context.Context, page, pageSize int, genre, search string) ([]domain.AudioTrack, Pagination, error) {
	page, pageSize = normalizePage(page, pageSize)

	tracks, total, err := s.tracks.List(ctx, domain.TrackFilter{
		Genre:  genre,
		Search: search,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return nil, Pagination{}, err
	}
	return tracks, buildPagination(page, pageSize, total), nil
}

// GetTrack returns a single public track with lyrics, album and genres
func (s *CatalogService) GetTrack(ctx context.Context, id uuid.UUID) (*domain.AudioTrack, error) {
	return s.tracks.GetPublicByID(ctx, id)
}

// UploadTrack persists a new track together with its genre associations
func (s *CatalogService) UploadTrack(ctx context.Context, track *domain.AudioTrack, genreIDs []uuid.UUID) error {
	if track.Title == "" {
		return errors.New("title is required")
	}
	if track.AudioURL == "" {
		return errors.New("audio reference is required")
	}
	return s.tracks.Create(ctx, track, genreIDs)
}

// DeleteTrack removes a track owned by the calling artist and returns the
// blob URLs the track referenced so the boundary can clean up storage
func (s *CatalogService) DeleteTrack(ctx context.Context, id, artistID uuid.UUID) ([]string, error) {
	return s.tracks.Delete(ctx, id, artistID)
}

// MarkTrackProcessed flips the processing status after ingestion finishes
// and returns the owning artist id
func (s *CatalogService) MarkTrackProcessed(ctx context.Context, id uuid.UUID, ok bool) (uuid.UUID, error) {
	status := domain.StatusCompleted
	if !ok {
		status = domain.StatusFailed
	}
	return s.tracks.SetProcessingStatus(ctx, id, status)
}

// ListVideos returns one page of public videos, newest first
func (s *CatalogService) ListVideos(ctx context.Context, page, pageSize int) ([]domain.Video, Pagination, error) {
	page, pageSize = normalizePage(page, pageSize)

	videos, total, err := s.videos.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, Pagination{}, err
	}
	return videos, buildPagination(page, pageSize, total), nil
}

// GetVideo returns a single public video
func (s *CatalogService) GetVideo(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	return s.videos.GetPublicByID(ctx, id)
}

// UploadVideo persists a new video
func (s *CatalogService) UploadVideo(ctx context.Context, video *domain.Video) error {
	if video.Title == "" {
		return errors.New("title is required")
	}
	if video.VideoURL == "" {
		return errors.New("video reference is required")
	}
	return s.videos.Create(ctx, video)
}

// DeleteVideo removes a video owned by the calling artist and returns the
// blob URLs it referenced
func (s *CatalogService) DeleteVideo(ctx context.Context, id, artistID uuid.UUID) ([]string, error) {
	return s.videos.Delete(ctx, id, artistID)
}

// ListGenres returns the genre reference set
func (s *CatalogService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	return s.genres.List(ctx)
}

// CreateGenre adds a genre to the reference set (admin only at the boundary)
func (s *CatalogService) CreateGenre(ctx context.Context, genre *domain.Genre) error {
	if genre.Name == "" {
		return errors.New("name is required")
	}
	return s.genres.Create(ctx, genre)
}

// CreateAlbum creates an album for the calling artist
func (s *CatalogService) CreateAlbum(ctx context.Context, album *domain.Album) error {
	if album.Title == "" {
		return errors.New("title is required")
	}
	return s.albums.Create(ctx, album)
}

// ListAlbums returns an artist's albums, newest first
func (s *CatalogService) ListAlbums(ctx context.Context, artistID uuid.UUID) ([]domain.Album, error) {
	return s.albums.ListByArtist(ctx, artistID)
}

// DeleteAlbum removes an album; its tracks survive with album cleared
func (s *CatalogService) DeleteAlbum(ctx context.Context, id, artistID uuid.UUID) error {
	return s.albums.Delete(ctx, id, artistID)
}
