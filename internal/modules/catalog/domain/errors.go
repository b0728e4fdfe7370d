package domain

import "errors"

var (
	ErrTrackNotFound = errors.New("track not found")
	ErrVideoNotFound = errors.New("video not found")
	ErrGenreNotFound = errors.New("genre not found")
	ErrGenreExists   = errors.New("genre with this name already exists")
	ErrAlbumNotFound = errors.New("album not found")
	ErrForbidden     = errors.New("not the owner of this item")
)
