package dto

type CreateTodoRequest struct {
	Task   string `json:"task"`
	Detail string `json:"detail"`
}

type UpdateTodoRequest struct {
	Task   string `json:"task"`
	Detail string `json:"detail"`
}
