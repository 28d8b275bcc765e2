// Package aggregator combines content from multiple providers into a unified view.
//
// This package enables the dashboard to:
// - Normalize news articles, movies and social posts into one Item shape
// - Merge the three provider collections in a stable order
// - Carry kind-specific metadata without untyped access
package aggregator

import (
	"encoding/json"
	"fmt"
)

// Kind identifies which provider an item came from.
type Kind string

const (
	KindNews   Kind = "news"
	KindMovie  Kind = "movie"
	KindSocial Kind = "social"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindNews, KindMovie, KindSocial:
		return true
	}
	return false
}

// Meta is the kind-specific part of an Item.
// Implementations are NewsMeta, MovieMeta and SocialMeta.
type Meta interface {
	Kind() Kind
	isMeta()
}

// NewsMeta holds article metadata.
type NewsMeta struct {
	SourceName  string `json:"sourceName"`
	PublishedAt string `json:"publishedAt"`
}

// MovieMeta holds movie metadata.
type MovieMeta struct {
	ReleaseDate string  `json:"releaseDate"`
	VoteAverage float64 `json:"voteAverage"`
}

// SocialMeta holds post metadata.
type SocialMeta struct {
	UserID int `json:"userId"`
}

func (NewsMeta) Kind() Kind   { return KindNews }
func (MovieMeta) Kind() Kind  { return KindMovie }
func (SocialMeta) Kind() Kind { return KindSocial }

func (NewsMeta) isMeta()   {}
func (MovieMeta) isMeta()  {}
func (SocialMeta) isMeta() {}

// Item represents a unified piece of content from any provider.
//
// Image and Link are absolute URLs; the empty string means absent.
type Item struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
	Image       string
	Link        string
	Meta        Meta
}

// itemJSON is the persisted/wire layout of an Item.
type itemJSON struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image,omitempty"`
	Link        string          `json:"url,omitempty"`
	Meta        json.RawMessage `json:"meta,omitempty"`
}

// MarshalJSON encodes the item with its meta under "meta".
func (i Item) MarshalJSON() ([]byte, error) {
	out := itemJSON{
		ID:          i.ID,
		Kind:        i.Kind,
		Title:       i.Title,
		Description: i.Description,
		Image:       i.Image,
		Link:        i.Link,
	}
	if i.Meta != nil {
		if i.Meta.Kind() != i.Kind {
			return nil, fmt.Errorf("item %s: %s meta on %s item", i.ID, i.Meta.Kind(), i.Kind)
		}
		raw, err := json.Marshal(i.Meta)
		if err != nil {
			return nil, err
		}
		out.Meta = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an item, choosing the meta type from "type".
func (i *Item) UnmarshalJSON(data []byte) error {
	var in itemJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	var meta Meta
	switch in.Kind {
	case KindNews:
		var m NewsMeta
		if err := decodeMeta(in.Meta, &m); err != nil {
			return fmt.Errorf("item %s: %w", in.ID, err)
		}
		meta = m
	case KindMovie:
		var m MovieMeta
		if err := decodeMeta(in.Meta, &m); err != nil {
			return fmt.Errorf("item %s: %w", in.ID, err)
		}
		meta = m
	case KindSocial:
		var m SocialMeta
		if err := decodeMeta(in.Meta, &m); err != nil {
			return fmt.Errorf("item %s: %w", in.ID, err)
		}
		meta = m
	default:
		return fmt.Errorf("item %s: unknown type %q", in.ID, in.Kind)
	}

	*i = Item{
		ID:          in.ID,
		Kind:        in.Kind,
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Link:        in.Link,
		Meta:        meta,
	}
	return nil
}

func decodeMeta(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid meta: %w", err)
	}
	return nil
}
