package newsapi

import "time"

// Article is a single news article.
type Article struct {
	Source      Source    `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Source names the outlet that published an article.
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// everythingResponse is the JSON response for /v2/everything.
type everythingResponse struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

// apiError represents a NewsAPI error response.
type apiError struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
