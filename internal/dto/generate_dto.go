package dto

// GenerateRequest starts a generation task. Mode decides which fields are
// required: preview and image need a prompt/image, refine needs the id of a
// finished preview task.
type GenerateRequest struct {
	Mode          string `json:"mode" validate:"required,oneof=preview refine image"`
	Prompt        string `json:"prompt,omitempty"`
	PreviewTaskId string `json:"previewTaskId,omitempty"`
	ImageUrl      string `json:"imageUrl,omitempty"`
}

type GenerateResponse struct {
	TaskId           string `json:"taskId"`
	TaskType         string `json:"taskType"`
	ServiceType      string `json:"serviceType"`
	CreditsCost      int    `json:"creditsCost"`
	RemainingCredits int    `json:"remainingCredits"`
	Status           string `json:"status"`
	// Warning is set when the spend committed but the model record write
	// failed; the paid result is still returned.
	Warning string `json:"warning,omitempty"`
}

type TaskStatusResponse struct {
	Id           string `json:"id"`
	Status       string `json:"status"`
	Progress     int    `json:"progress"`
	ModelUrl     string `json:"modelUrl,omitempty"`
	ThumbnailUrl string `json:"thumbnailUrl,omitempty"`
}

// PollTaskMessage is the watermill payload handed to the background poll
// worker after a paid generation.
type PollTaskMessage struct {
	TaskId   string `json:"task_id"`
	TaskType string `json:"task_type"`
	UserId   string `json:"user_id"`
}
