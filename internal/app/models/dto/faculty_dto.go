package dto

// ListFacultyQuery bounds the list-all endpoint
type ListFacultyQuery struct {
	Limit int `form:"limit,default=100" binding:"omitempty,min=1,max=1000"`
}

// NameSearchQuery is a case-insensitive substring search on faculty names
type NameSearchQuery struct {
	Q string `form:"q" binding:"required"`
}
