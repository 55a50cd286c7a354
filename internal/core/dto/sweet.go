package dto

type CreateSweetRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Category    string `json:"category" binding:"required,min=2"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	Quantity    int    `json:"quantity" binding:"gte=0"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,url"`
}

type UpdateSweetRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2"`
	Category    *string `json:"category" binding:"omitempty,min=2"`
	Price       *int64  `json:"price" binding:"omitempty,gt=0"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

type SearchSweetsRequest struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	MinPrice *int64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice *int64 `form:"maxPrice" binding:"omitempty,gte=0"`
	Page     int64  `form:"page,default=1" binding:"gte=1"`
	Limit    int64  `form:"limit,default=10" binding:"gte=1,lte=100"`
}

type ListSweetsRequest struct {
	Page  int64 `form:"page,default=1" binding:"gte=1"`
	Limit int64 `form:"limit,default=10" binding:"gte=1,lte=100"`
}
