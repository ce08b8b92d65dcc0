package models

// ApplySFXRequest is the body posted to the processing service.
type ApplySFXRequest struct {
	VideoLink string `json:"videoLink"`
}

// InputRequest carries the text of the link input after an edit.
type InputRequest struct {
	VideoLink string `json:"videoLink"`
}

// StateView is the form state as the browser sees it.
type StateView struct {
	Phase        string `json:"phase"`
	Submitted    bool   `json:"submitted"`
	VideoLink    string `json:"videoLink"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Pending      bool   `json:"pending"`
	// Title is the video title, when it could be looked up after submission.
	Title string `json:"title,omitempty"`
}

type APIResponse struct {
	Success bool       `json:"success"`
	Error   string     `json:"error,omitempty"`
	State   *StateView `json:"state,omitempty"`
}
