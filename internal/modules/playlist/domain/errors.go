package domain

import "errors"

var (
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrTrackNotInList   = errors.New("track not in playlist")
	ErrTrackAlreadyIn   = errors.New("track already in playlist")
	ErrForbidden        = errors.New("not the owner of this playlist")
)
