package domain

import "errors"

var ErrArtistNotFound = errors.New("artist not found")
