package catalog

import (
	"fmt"

	"cempagamez/internal/domain"
)

const (
	primaryImageTemplate   = "https://shared.fastly.steamstatic.com/store_item_assets/steam/apps/%s/library_600x900.jpg"
	secondaryImageTemplate = "https://barryhamsy.github.io/gamelist/%s.jpg"

	DefaultImageURL = "https://barryhamsy.github.io/gamelist/1285190.jpg"
)

func PrimaryImageURL(id string) string { return fmt.Sprintf(primaryImageTemplate, id) }

func SecondaryImageURL(id string) string { return fmt.Sprintf(secondaryImageTemplate, id) }

// ImageCandidates lists the URLs a card tries in order when an image fails to load:
// the game's own image, the secondary host keyed by id, then the shared default.
func ImageCandidates(g domain.Game) []string {
	chain := []string{g.ImageURL, SecondaryImageURL(g.ID), DefaultImageURL}
	out := make([]string, 0, len(chain))
	seen := make(map[string]struct{}, len(chain))
	for _, u := range chain {
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
