package model

// Record is one business/profile row of the directory spreadsheet.
// Name is the only required field; every other field is empty when absent.
// Records are built per request at the parse boundary and never persisted.
type Record struct {
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	Location  string `json:"location,omitempty"`
	Bio       string `json:"bio,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	Website   string `json:"website,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

