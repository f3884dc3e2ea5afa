package ai

import (
	"context"
	"fmt"
	"strings"
)

const assistantSystemPrompt = `You are a helpful study assistant. Your role is to:
- Answer questions about the study material
- Explain concepts clearly and concisely
- Provide examples when helpful
- Encourage learning and understanding
- Be supportive and patient

Keep responses concise but informative.`

const (
	// maxChatContextChars bounds how much study material rides along as
	// context so conversations stay under provider token limits.
	maxChatContextChars = 2000
	// maxChatHistory caps the rolling conversation window.
	maxChatHistory = 10

	maxChatTokens = 500
)

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest asks the study assistant a question. History carries the
// prior turns the client got back from the previous call.
type ChatRequest struct {
	Message string
	Context string
	APIKey  string
	History []ChatMessage
}

// ChatResult is the assistant's reply plus the updated rolling history the
// client should send with its next message.
type ChatResult struct {
	Reply   string
	History []ChatMessage
}

// Chat sends one study-assistant turn. The study material context is
// truncated, the conversation history is capped to the newest turns, and
// provider failures map onto the same error taxonomy as quiz generation.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (ChatResult, error) {
	messages := []ChatMessage{{Role: "system", Content: assistantSystemPrompt}}
	if req.Context != "" {
		material := req.Context
		if len(material) > maxChatContextChars {
			material = material[:maxChatContextChars]
		}
		messages = append(messages, ChatMessage{
			Role:    "system",
			Content: "Here is the study material for reference:\n\n" + material,
		})
	}
	messages = append(messages, req.History...)
	messages = append(messages, ChatMessage{Role: "user", Content: req.Message})

	body := map[string]any{
		"model":       openAIModel,
		"messages":    messages,
		"temperature": 0.7,
		"max_tokens":  maxChatTokens,
	}
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	headers := map[string]string{"Authorization": "Bearer " + req.APIKey}
	if err := c.post(ctx, c.opts.OpenAIBaseURL+"/chat/completions", headers, body, &out); err != nil {
		return ChatResult{}, err
	}
	if len(out.Choices) == 0 {
		return ChatResult{}, fmt.Errorf("assistant returned no reply")
	}
	reply := strings.TrimSpace(out.Choices[0].Message.Content)

	history := append(append([]ChatMessage{}, req.History...),
		ChatMessage{Role: "user", Content: req.Message},
		ChatMessage{Role: "assistant", Content: reply},
	)
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}

	c.log.Infow("assistant reply generated", "turns", len(history))
	return ChatResult{Reply: reply, History: history}, nil
}
