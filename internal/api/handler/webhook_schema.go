package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type sessionEventRequest struct {
	SubjectID string `json:"subject_id" validate:"required"`
	// SignedOut marks the event as a sign-out; the metadata fields below
	// are ignored when set.
	SignedOut  bool   `json:"signed_out"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar"`
	PictureURL string `json:"picture"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
