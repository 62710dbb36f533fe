// Package blog serves the static exhibition article and the visitor
// comments attached to it for the length of a browsing session.
package blog

// Post is a published article.
type Post struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Date       string   `json:"date"`
	CoverImage string   `json:"coverImage"`
	CoverAlt   string   `json:"coverAlt"`
	Paragraphs []string `json:"paragraphs"`
}

var featured = Post{
	Title:      "Annual Textile Exhibition Coming Soon",
	Author:     "Admin",
	Date:       "2024-03-15",
	CoverImage: "https://images.unsplash.com/photo-1606913084603-3e7702b01627?auto=format&fit=crop&q=80",
	CoverAlt:   "Blog post cover",
	Paragraphs: []string{
		"Join us for the biggest textile exhibition of the year featuring local artisans and their masterpieces. Experience the rich heritage of Elampillai's textile industry.",
	},
}

// Lookup returns the article shown for the route id. There is a single
// article, so every id renders the same content.
func Lookup(id string) Post {
	p := featured
	p.ID = id
	p.Paragraphs = append([]string(nil), featured.Paragraphs...)
	return p
}
