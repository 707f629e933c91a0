package domain

// NewsQuery carries the upstream newsapi.org parameters the SPA is allowed to set.
type NewsQuery struct {
	Query    string
	Language string
	SortBy   string
	PageSize int
}

type NewsArticle struct {
	Source      NewsSource `json:"source"`
	Author      string     `json:"author"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	ImageURL    string     `json:"urlToImage"`
	PublishedAt string     `json:"publishedAt"`
}

type NewsSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type NewsResult struct {
	Articles     []NewsArticle `json:"articles"`
	TotalResults int           `json:"totalResults"`
}
