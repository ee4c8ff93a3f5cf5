package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"cempagamez/internal/domain"
)

const (
	catalogSampleSize = 50
	detailsLen        = 100
)

type catalogEntry struct {
	Title   string `json:"title"`
	Details string `json:"details"`
}

// SystemInstruction introduces the assistant and embeds a compact sample of the
// catalog so replies stay within what the store sells.
func SystemInstruction(games domain.Catalog) string {
	n := len(games)
	if n > catalogSampleSize {
		n = catalogSampleSize
	}
	sample := make([]catalogEntry, 0, n)
	for _, g := range games[:n] {
		sample = append(sample, catalogEntry{Title: g.Title, Details: truncate(g.Description, detailsLen)})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(sample)

	return strings.Join([]string{
		`You are "AIni", a knowledgeable AI assistant for a digital game store.`,
		"Your goal is to help users find games they will love from our specific catalog.",
		"Be concise, friendly, and helpful.",
		"",
		"Here is a sample of our current catalog:",
		strings.TrimSpace(buf.String()),
		"",
		"If a user asks about a game not in this list, politely inform them we don't carry it but suggest a similar one from our catalog if possible.",
		"Keep your responses relatively short (under 100 words).",
	}, "\n")
}

// RecommendationPrompt asks for one game the visitor does not own yet.
func RecommendationPrompt(owned []string, games domain.Catalog) string {
	titles := make([]string, 0, len(owned))
	for _, g := range games {
		for _, id := range owned {
			if g.ID == id {
				titles = append(titles, g.Title)
				break
			}
		}
	}
	list := strings.Join(titles, ", ")
	if list == "" {
		list = "None yet"
	}
	return strings.Join([]string{
		fmt.Sprintf("The user owns the following games: %s.", list),
		"Based on this (or if they have none, suggest a popular starter), recommend ONE game from our catalog that they don't own yet.",
		"Explain briefly why in 1 sentence.",
		`Format: "I recommend [Game Title]: [Reason]"`,
	}, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// history maps chat messages to conversation turns.
func history(msgs []domain.ChatMessage) []Content {
	out := make([]Content, 0, len(msgs)+1)
	for _, m := range msgs {
		role := "user"
		if m.Role == domain.RoleModel {
			role = "model"
		}
		out = append(out, textContent(role, m.Text))
	}
	return out
}
