package handlers

import "time"

// ShortenRequest is the request body for shortening a URL.
type ShortenRequest struct {
	Body struct {
		URL         string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"url"`
		Title       string `doc:"Optional title"        json:"title,omitempty"       required:"false"`
		Description string `doc:"Optional description"  json:"description,omitempty" required:"false"`
	}
}

// ShortenResponse is the response for a successfully shortened URL.
type ShortenResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		Slug        string `doc:"The slug"           example:"0001Ab"                             json:"slug"`
		ShortURL    string `doc:"The full short URL" example:"http://localhost:8888/0001Ab"       json:"shortUrl"`
		OriginalURL string `doc:"The original URL"   example:"https://example.com/very/long/path" json:"originalUrl"`
	}
}

// RedirectRequest is the request for resolving a slug.
type RedirectRequest struct {
	Slug string `doc:"The slug" example:"0001Ab" path:"slug"`
}

// RedirectResponse redirects the client to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}

// DeleteURLRequest is the request for deleting a short URL.
type DeleteURLRequest struct {
	Slug string `doc:"The slug" example:"0001Ab" path:"slug"`
}

// DeleteURLResponse is the empty response for a successful deletion.
type DeleteURLResponse struct{}

// URLSummary is one owned short URL in a listing.
type URLSummary struct {
	Slug        string    `doc:"The slug"                json:"slug"`
	ShortURL    string    `doc:"The full short URL"      json:"shortUrl"`
	OriginalURL string    `doc:"The original URL"        json:"originalUrl"`
	Title       string    `doc:"Title"                   json:"title,omitempty"`
	Description string    `doc:"Description"             json:"description,omitempty"`
	HitCount    int64     `doc:"Number of resolutions"   json:"hitCount"`
	CreatedAt   time.Time `doc:"Creation time"           json:"createdAt"`
	LastAccess  time.Time `doc:"Last resolution time"    json:"lastAccess"`
}

// ListURLsResponse is the response for listing owned short URLs.
type ListURLsResponse struct {
	Body struct {
		URLs []URLSummary `doc:"Short URLs owned by the caller" json:"urls"`
	}
}
