package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createSweetRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
	Description string  `json:"description"`
}

// updateSweetRequest uses pointers so an omitted field can be told apart
// from a supplied zero; the service decides what a supplied zero means.
type updateSweetRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Quantity *float64 `json:"quantity"`
}

// searchSweetsRequest binds the query string. Price bounds must be
// non-negative numbers when present; a malformed number fails binding.
type searchSweetsRequest struct {
	Name     string   `query:"name"`
	Category string   `query:"category"`
	MinPrice *float64 `query:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice *float64 `query:"maxPrice" validate:"omitempty,gte=0"`
}

type stockRequest struct {
	Quantity float64 `json:"quantity"`
}

type messageResponse struct {
	Message string `json:"message"`
}
