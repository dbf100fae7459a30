package wrapper

type ResponseWrapper struct {
	Data    interface{} `json:"data"`
	Success bool        `json:"success"`
}

type SuccessWrapper struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type ErrorWrapper struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// TrackWrapper is the public tracking acknowledgement: the session id is
// echoed back so the client can reuse it for the exit beacon.
type TrackWrapper struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
	Success   bool   `json:"success"`
}
