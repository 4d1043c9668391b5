package admin

// CreateCategoryRequest es el body de POST /admin/category.
type CreateCategoryRequest struct {
	Type int    `json:"type"`
	Name string `json:"name"`
	Sort int    `json:"sort"`
}

// UpdateCategoryRequest es el body de PUT /admin/category.
type UpdateCategoryRequest struct {
	ID   int64  `json:"id"`
	Type int    `json:"type"`
	Name string `json:"name"`
	Sort int    `json:"sort"`
}
