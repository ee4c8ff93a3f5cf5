package catalog

import (
	"fmt"
	"strconv"

	"cempagamez/internal/domain"
)

const (
	PriceNew      = 10.0
	PriceStandard = 8.0

	defaultRating      = 4.5
	defaultTitle       = "Untitled Game"
	defaultCategory    = "General"
	defaultReleaseDate = "2024"
)

// RawRecord is one element of the remote catalog payload. Every field is optional and
// loosely typed upstream, so values are kept as decoded JSON and read through text().
type RawRecord struct {
	AppID        any `json:"appid"`
	Name         any `json:"name"`
	Title        any `json:"title"`
	SizeGB       any `json:"size_gb"`
	Downloads    any `json:"downloads"`
	New          any `json:"new"`
	PrimaryGenre any `json:"primary_genre"`
	AddedOn      any `json:"added_on"`
}

// PriceFor is the two-tier pricing policy.
func PriceFor(isNew bool) float64 {
	if isNew {
		return PriceNew
	}
	return PriceStandard
}

// Normalize maps raw records to games, keeping payload order.
func Normalize(records []RawRecord) domain.Catalog {
	out := make(domain.Catalog, 0, len(records))
	for i, r := range records {
		out = append(out, normalizeOne(r, i))
	}
	return out
}

func normalizeOne(r RawRecord, index int) domain.Game {
	id := orDefault(idText(r.AppID), fmt.Sprintf("game-%d", index))
	title := orDefault(text(r.Name), orDefault(text(r.Title), defaultTitle))

	return domain.Game{
		ID:          id,
		Title:       title,
		Description: describe(id, r),
		Price:       PriceFor(isNew(r.New)),
		ImageURL:    PrimaryImageURL(id),
		Category:    orDefault(text(r.PrimaryGenre), defaultCategory),
		Rating:      defaultRating,
		ReleaseDate: orDefault(text(r.AddedOn), defaultReleaseDate),
	}
}

func describe(id string, r RawRecord) string {
	return fmt.Sprintf("AppID: %s\nSize: %s\nDownloads: %s",
		id,
		orDefault(text(r.SizeGB), "Unknown"),
		orDefault(text(r.Downloads), "0"),
	)
}

// isNew accepts a real boolean or the string "true".
func isNew(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	default:
		return false
	}
}

// text renders a decoded JSON scalar. Missing, null, false, zero and empty values
// all come back as "" so they pick up the caller's default.
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return ""
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// idText differs from text in that a numeric id of 0 is still an id.
func idText(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return text(v)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
