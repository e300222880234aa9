// Package motivation supplies the daily motivational message. A static
// quote pool always works; when an AI API key is configured, a fresh
// message is generated instead, falling back to the pool on any failure.
package motivation

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

var quotes = []string{
	"The only bad workout is the one that didn't happen.",
	"Small steps every day add up to big results.",
	"Discipline is choosing between what you want now and what you want most.",
	"Your body can stand almost anything. It's your mind you have to convince.",
	"Strength does not come from what you can do. It comes from overcoming what you once could not.",
	"Don't count the days, make the days count.",
	"Sweat is just fat crying.",
	"A one-hour workout is 4% of your day. No excuses.",
	"The pain you feel today will be the strength you feel tomorrow.",
	"You don't have to be extreme, just consistent.",
	"Rest when you're done, not when you're tired.",
	"Progress, not perfection.",
	"The hardest lift of all is lifting yourself off the couch.",
	"Take care of your body. It's the only place you have to live.",
}

const systemPrompt = `You write one short motivational message for someone tracking their workouts and hydration in a fitness app. One or two sentences, encouraging, no hashtags, no emoji.`

// Generator produces the daily message.
type Generator struct {
	client *openai.Client
	model  string
}

// New creates a Generator. With an empty apiKey the generator only serves
// quotes from the static pool.
func New(apiKey, baseURL, model string) *Generator {
	g := &Generator{model: model}
	if apiKey != "" {
		config := openai.DefaultConfig(apiKey)
		if baseURL != "" {
			config.BaseURL = baseURL
		}
		g.client = openai.NewClientWithConfig(config)
	}
	return g
}

// Quote returns the static pool entry for the given day. Rotation is
// deterministic so restarts within one day pick the same quote.
func Quote(day time.Time) string {
	return quotes[(day.Year()*366+day.YearDay())%len(quotes)]
}

// DailyMessage returns today's motivational message.
func (g *Generator) DailyMessage(ctx context.Context, now time.Time) string {
	if g.client == nil {
		return Quote(now)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Today is %s.", now.Format("Monday, January 2"))},
		},
		Temperature: 0.9,
	})
	if err != nil {
		log.Printf("Failed to generate motivational message, using quote pool: %v", err)
		return Quote(now)
	}
	if len(resp.Choices) == 0 {
		return Quote(now)
	}

	msg := strings.TrimSpace(resp.Choices[0].Message.Content)
	if msg == "" {
		return Quote(now)
	}
	return msg
}
