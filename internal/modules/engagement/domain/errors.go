package domain

import "errors"

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrAlreadyFavorited = errors.New("item already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrInvalidItemType  = errors.New("item type must be audio or video")
)
