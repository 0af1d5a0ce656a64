package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ContentType is an open set: the server may send tags this client has no
// label for.
type ContentType string

const (
	ContentNovel     ContentType = "novel"
	ContentMusic     ContentType = "music"
	ContentAnime     ContentType = "anime"
	ContentWallpaper ContentType = "wallpaper"
)

var ContentTypes = []ContentType{ContentNovel, ContentMusic, ContentAnime, ContentWallpaper}

type ContentItem struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Type        ContentType     `json:"type"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url,omitempty"`
}

// Category is the catalog filter: "all" or one of the content types.
type Category string

const CategoryAll Category = "all"

func ParseCategory(s string) (Category, error) {
	if Category(s) == CategoryAll {
		return CategoryAll, nil
	}
	for _, t := range ContentTypes {
		if ContentType(s) == t {
			return Category(s), nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
