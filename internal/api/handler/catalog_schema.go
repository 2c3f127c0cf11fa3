package handler

type slugRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

type titleRequest struct {
	Name        string   `json:"name"        validate:"required,max=256"`
	Year        int      `json:"year"        validate:"required"`
	Description string   `json:"description"`
	Genre       []string `json:"genre"       validate:"required,min=1"`
	Category    string   `json:"category"    validate:"required"`
}

type patchTitleRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,max=256"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}
