package dto

type CustomerResponse struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// CustomerSearchFilter is bound from query string of GET /v1/customers/search.
type CustomerSearchFilter struct {
	Q string `form:"q" validate:"required,min=1"`
}
