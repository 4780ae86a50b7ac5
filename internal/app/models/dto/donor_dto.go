package dto

// CreateDonorRequest registers a donor directly.
type CreateDonorRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Housing  string `json:"housing"`
	GradYear string `json:"gradYear"`
}

// CreateCategoryRequest registers a category directly.
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	CreatedBy string `json:"createdBy"`
}
