package models

// TeamID is the sentinel author used when no individual author resolves.
const TeamID = "mlab-team"

// Person is an entry of the people registry, stored as people/<id>.json.
type Person struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Headshot string   `json:"headshot"`
	Title    string   `json:"title"`
	Sections []string `json:"sections"`
}

// AuthorMapping maps a free-text author name to a person id.
type AuthorMapping map[string]string

// AuthorStat counts how often a free-text author name appears in legacy articles.
type AuthorStat struct {
	Name  string
	ID    string
	Count int
}
