package models

type Message struct {
	Message string `json:"message"`
}

func MessageResponse(message string) Message {
	return Message{Message: message}
}
