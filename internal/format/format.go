// Package format converts lightweight Markdown into Telegram message
// entities so notifications render with native formatting.
package format

import (
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ParseResult contains the plain text and the entities describing its styling.
type ParseResult struct {
	Text     string
	Entities []tgbotapi.MessageEntity
}

// UTF16Len returns the UTF-16 code-unit length of s. Telegram entity
// offsets and lengths are measured in UTF-16 units, not bytes or runes.
func UTF16Len(s string) int {
	length := 0
	for _, r := range s {
		if r > 0xFFFF {
			length += 2 // surrogate pair
		} else {
			length++
		}
	}
	return length
}

var (
	boldRe = regexp.MustCompile(`\*\*(.+?)\*\*`)
	codeRe = regexp.MustCompile("`([^`]+?)`")
)

// ParseMarkdown strips **bold** and `code` markers from text and returns
// the corresponding Telegram entities.
func ParseMarkdown(text string) ParseResult {
	result := text
	var entities []tgbotapi.MessageEntity

	result, entities = extract(result, entities, boldRe, "bold")
	result, entities = extract(result, entities, codeRe, "code")

	return ParseResult{Text: result, Entities: entities}
}

func extract(text string, entities []tgbotapi.MessageEntity, re *regexp.Regexp, entityType string) (string, []tgbotapi.MessageEntity) {
	for {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			return text, entities
		}

		inner := text[loc[2]:loc[3]]
		entities = append(entities, tgbotapi.MessageEntity{
			Type:   entityType,
			Offset: UTF16Len(text[:loc[0]]),
			Length: UTF16Len(inner),
		})
		text = text[:loc[0]] + inner + text[loc[1]:]
	}
}

// Bold wraps s in bold markers.
func Bold(s string) string {
	return "**" + strings.ReplaceAll(s, "**", "") + "**"
}
