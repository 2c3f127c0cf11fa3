package domain

// Category classifies a title (film, book, music, ...). Exactly one per title.
type Category struct {
	ID   string `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Genre tags a title; a title may carry any number of genres.
type Genre struct {
	ID   string `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Title is the reviewable work. Rating is a derived read-only field: the
// rounded average of review scores, nil while the title has no reviews.
type Title struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Genres      []Genre  `json:"genre"`
	Rating      *int     `json:"rating"`
}
