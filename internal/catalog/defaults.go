package catalog

import "cempagamez/internal/domain"

// Defaults returns the bundled catalog served when no other source is available.
// A fresh slice is returned on every call so callers cannot alias it.
func Defaults() domain.Catalog {
	return domain.Catalog{
		{
			ID:          "1",
			Title:       "Cyber Odyssey 2077",
			Description: "Explore a neon-drenched metropolis in this open-world RPG. Hack, slash, and drive your way through the underworld.",
			Price:       10,
			ImageURL:    "https://picsum.photos/seed/cyber/400/500",
			Category:    "RPG",
			Rating:      4.8,
			ReleaseDate: "2023-11-15",
		},
		{
			ID:          "2",
			Title:       "Stellar Horizon",
			Description: "Command your own starship and explore procedurally generated galaxies. Trade, fight, and survive.",
			Price:       8,
			ImageURL:    "https://picsum.photos/seed/space/400/500",
			Category:    "Simulation",
			Rating:      4.5,
			ReleaseDate: "2024-01-20",
		},
		{
			ID:          "3",
			Title:       "Shadows of Valhalla",
			Description: "A brutal action-adventure set in Norse mythology. Master the axe and shield to defeat ancient gods.",
			Price:       8,
			ImageURL:    "https://picsum.photos/seed/viking/400/500",
			Category:    "Action",
			Rating:      4.9,
			ReleaseDate: "2023-09-10",
		},
		{
			ID:          "4",
			Title:       "Pixel Racer X",
			Description: "High-octane retro racing with modern physics. Customize your ride and dominate the leaderboards.",
			Price:       8,
			ImageURL:    "https://picsum.photos/seed/car/400/500",
			Category:    "Racing",
			Rating:      4.2,
			ReleaseDate: "2024-03-05",
		},
		{
			ID:          "5",
			Title:       "The Lost Archives",
			Description: "Solve intricate puzzles in a mysterious, abandoned library that transcends time and space.",
			Price:       8,
			ImageURL:    "https://picsum.photos/seed/book/400/500",
			Category:    "Puzzle",
			Rating:      4.7,
			ReleaseDate: "2023-12-01",
		},
		{
			ID:          "6",
			Title:       "Frontier Tactics",
			Description: "Turn-based strategy in a sci-fi western setting. Build your squad and outsmart the enemy.",
			Price:       8,
			ImageURL:    "https://picsum.photos/seed/desert/400/500",
			Category:    "Strategy",
			Rating:      4.4,
			ReleaseDate: "2024-02-15",
		},
		{
			ID:          "7",
			Title:       "Abyss Walker",
			Description: "Dive into the deepest trenches of the ocean. Survival horror awaits in the crushing darkness.",
			Price:       8,
			ImageURL:    "https://picsum.photos/seed/water/400/500",
			Category:    "Horror",
			Rating:      4.6,
			ReleaseDate: "2023-10-31",
		},
		{
			ID:          "8",
			Title:       "Kingdom Reborn",
			Description: "Build and manage a thriving medieval kingdom. Balance economy, happiness, and defense.",
			Price:       8,
			ImageURL:    "https://picsum.photos/seed/castle/400/500",
			Category:    "Simulation",
			Rating:      4.3,
			ReleaseDate: "2024-04-10",
		},
		{
			ID:          "9",
			Title:       "Neon Ninja",
			Description: "Fast-paced platformer with synthwave beats. Run, wall-jump, and slice through obstacles.",
			Price:       8,
			ImageURL:    "https://picsum.photos/seed/neon/400/500",
			Category:    "Platformer",
			Rating:      4.1,
			ReleaseDate: "2024-05-20",
		},
	}
}
