package dto

// Envelope is the uniform response shape: {success, data} on success,
// {success, error} on failure.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func OKMessage(data any, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Error: message}
}
