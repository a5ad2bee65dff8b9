package domain

// ConversationMessage es el mensaje devuelto por promptConversation.
type ConversationMessage struct {
	Role           string `json:"role"`
	Author         string `json:"author"`
	Message        string `json:"message"`
	Tokens         int    `json:"tokens"`
	CompletionTime string `json:"completionTime"`
}

// ConversationResponse es transitorio: la sesion solo retiene el id y el texto.
type ConversationResponse struct {
	Conversation struct {
		ID string `json:"id"`
	} `json:"conversation"`
	Message      *ConversationMessage `json:"message"`
	MessageCount int                  `json:"messageCount"`
}
