package category

type Category struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	TopProductID  *int64 `json:"top_product_id"`
	ProductsCount int64  `json:"products_count"`
}

type CreateCategoryInput struct {
	Title        string `json:"title" validate:"required,min=1,max=255"`
	Description  string `json:"description" validate:"max=500"`
	TopProductID *int64 `json:"top_product_id"`
}

// UpdateCategoryInput is a partial update; nil fields are left untouched.
type UpdateCategoryInput struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	TopProductID *int64  `json:"top_product_id"`
}
