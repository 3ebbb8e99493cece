package echoapi

// actionResponse is the result shape returned by mutation endpoints.
type actionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type tokenResponse struct {
	Token string `json:"token"`
}
