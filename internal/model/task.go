package model

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Reward      uint64 `json:"reward"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at"`
}

type GetTasksRequest struct{}

type GetTasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Reward      uint64 `json:"reward"`
}

type CreateTaskResponse struct {
	ID string `json:"id"`
}

type UpdateTaskRequest struct {
	ID          string  `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
	Reward      *uint64 `json:"reward"`
	Active      *bool   `json:"active"`
}

type UpdateTaskResponse struct{}

type DeleteTaskRequest struct {
	ID string `json:"id"`
}

type DeleteTaskResponse struct{}
