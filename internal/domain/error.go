package domain

// ValidationErrorResponse is the 400 body.
// @Description Every rule the request broke, in evaluation order.
type ValidationErrorResponse struct {
	Errors []string `json:"errors" example:"Product name must not be empty."`
}

// MessageResponse is the 401/404/409 body and the body of delete/login successes.
type MessageResponse struct {
	Message string `json:"message" example:"Product not found."`
}

// InternalErrorResponse is the 500 body.
type InternalErrorResponse struct {
	Message string `json:"message" example:"Error creating product."`
	Error   string `json:"error,omitempty" example:"connection refused"`
}
