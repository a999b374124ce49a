package model

// Book is a catalog entry. Books are loaded once at startup and never
// change afterwards.
//
// Fields:
//  ISBN   – publisher formatted ISBN, used as the catalog key.
//  Title  – display title.
//  Author – author full name.
//  Year   – publication year.
//  Genre  – free form genre label.
type Book struct {
	ISBN   string `json:"isbn" yaml:"isbn"`
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Year   int    `json:"year" yaml:"year"`
	Genre  string `json:"genre" yaml:"genre"`
}
