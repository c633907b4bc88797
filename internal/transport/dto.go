package transport

type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type DeleteResponse struct {
	Message string `json:"message"`
	Changes int64  `json:"changes"`
}

// AddItemRequest leaves Quantity nil when the field is omitted.
type AddItemRequest struct {
	ProductID int64  `json:"productId"`
	Quantity  *int64 `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity *int64 `json:"quantity"`
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func Success(data any) Envelope {
	return Envelope{Message: "success", Data: data}
}
