package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"

	"solarmarket/internal/llm"
)

type chatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type chatbotRequest struct {
	Messages []chatMessage `json:"messages"`
}

// Chatbot forwards the conversation to the generative model and returns its
// reply.
func Chatbot(client *llm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatbotRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
			respondWithError(c, http.StatusBadRequest, "CHATBOT", "Invalid or empty messages provided")
			return
		}

		history := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
		for _, msg := range req.Messages {
			role := openai.ChatMessageRoleAssistant
			if msg.Sender == "user" {
				role = openai.ChatMessageRoleUser
			}
			history = append(history, openai.ChatCompletionMessage{
				Role:    role,
				Content: msg.Text,
			})
		}

		response, err := client.Chat(c.Request.Context(), history)
		if err != nil {
			log.Println("[CHATBOT] [ERROR] completion failed:", err)
			respondWithError(c, http.StatusInternalServerError, "CHATBOT", "Failed to get a response")
			return
		}

		c.JSON(http.StatusOK, gin.H{"response": response})
	}
}
