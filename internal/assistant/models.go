// internal/assistant/models.go
package assistant

// SearchResult is one web search hit used to ground the generation prompt.
type SearchResult struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}
