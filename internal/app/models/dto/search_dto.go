package dto

// SemanticSearchQuery carries the free-text query and result bound.
// TopK is capped at 20 to match the UI's result slider.
type SemanticSearchQuery struct {
	Q    string `form:"q" binding:"required"`
	TopK int    `form:"top_k,default=5" binding:"omitempty,min=1,max=20"`
}

// ScoredFaculty is one semantic search hit. Score is on a 0-100 scale,
// rounded to one decimal place.
type ScoredFaculty struct {
	Name        string  `json:"name"`
	Designation string  `json:"designation"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Education   *string `json:"education"`
	Interests   *string `json:"interests"`
	Image       *string `json:"image"`
	Link        *string `json:"link"`
	Score       float64 `json:"score"`
}

// SemanticSearchResponse wraps the hits with the query that produced them
type SemanticSearchResponse struct {
	Query   string          `json:"query"`
	Results []ScoredFaculty `json:"results"`
}
