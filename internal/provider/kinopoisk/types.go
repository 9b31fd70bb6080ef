package kinopoisk

// searchResponse is the JSON response from the movie search endpoint.
type searchResponse struct {
	Docs  []movieDoc `json:"docs"`
	Total int        `json:"total"`
	Limit int        `json:"limit"`
	Page  int        `json:"page"`
	Pages int        `json:"pages"`
}

// movieDoc is a single movie entry in a search response. The API omits or
// nulls most fields freely, so everything nested is a pointer.
type movieDoc struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	AlternativeName string       `json:"alternativeName"`
	Year            int          `json:"year"`
	Description     string       `json:"description"`
	Rating          *ratingBlock `json:"rating"`
	Poster          *posterBlock `json:"poster"`
}

type ratingBlock struct {
	KP   float64 `json:"kp"`
	IMDB float64 `json:"imdb"`
}

type posterBlock struct {
	URL        string `json:"url"`
	PreviewURL string `json:"previewUrl"`
}
