package memo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
)

const summaryPrompt = `
You summarize transcripts.
Write a short plain-text summary (three sentences at most) of the transcript
the user sends, in the transcript's own language.
Output ONLY the summary. No markdown, no preamble.
`

// Summarize asks the chat API for a short transcript summary.
func Summarize(ctx context.Context, client openai.Client, transcript string) (string, error) {
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summaryPrompt),
			openai.UserMessage(transcript),
		},
		Model: openai.ChatModelGPT5Nano,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("empty message content")
	}
	return content, nil
}
