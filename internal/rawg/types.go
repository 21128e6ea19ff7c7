package rawg

// Genre is a provider genre tag.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Studio is a developer or publisher.
type Studio struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Platform is the inner platform record of the provider's wrapper shape.
type Platform struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PlatformEntry mirrors the provider's {"platform": {...}} nesting.
type PlatformEntry struct {
	Platform Platform `json:"platform"`
}

// GameSummary is the list-view shape of a game.
type GameSummary struct {
	ID              int             `json:"id"`
	Slug            string          `json:"slug"`
	Name            string          `json:"name"`
	Released        string          `json:"released"`
	BackgroundImage string          `json:"background_image"`
	Metacritic      int             `json:"metacritic"`
	Rating          float64         `json:"rating"`
	Genres          []Genre         `json:"genres"`
	Platforms       []PlatformEntry `json:"platforms"`
}

// GameDetails is the full detail record of a game.
type GameDetails struct {
	ID              int             `json:"id"`
	Slug            string          `json:"slug"`
	Name            string          `json:"name"`
	Description     string          `json:"description_raw"`
	Released        string          `json:"released"`
	BackgroundImage string          `json:"background_image"`
	Website         string          `json:"website"`
	Metacritic      int             `json:"metacritic"`
	Genres          []Genre         `json:"genres"`
	Developers      []Studio        `json:"developers"`
	Publishers      []Studio        `json:"publishers"`
	Platforms       []PlatformEntry `json:"platforms"`
}

// GameRef is the minimal game record attached to reviews and list items, so
// clients do not have to resolve every game id themselves.
type GameRef struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	BackgroundImage string `json:"background_image"`
	Released        string `json:"released"`
}

// GamesPage is one page of game summaries as returned by the provider.
type GamesPage struct {
	Count   int64         `json:"count"`
	Results []GameSummary `json:"results"`
}

type genresPage struct {
	Count   int64   `json:"count"`
	Results []Genre `json:"results"`
}
