package dto

// CreateProductRequest logs a donated product. The donor and category may
// be referenced by ID or supplied as raw data, in which case they are
// resolved through find-or-create. The photo file rides alongside in the
// multipart form.
type CreateProductRequest struct {
	DonorID    *int64 `form:"donorId"`
	CategoryID *int64 `form:"categoryId"`

	DonorName     string `form:"donorName"`
	DonorEmail    string `form:"donorEmail" binding:"omitempty,email"`
	DonorHousing  string `form:"donorHousing"`
	DonorGradYear string `form:"donorGradYear"`

	CategoryName string `form:"categoryName"`

	Description string `form:"description"`
	CreatedBy   string `form:"createdBy"`
}
