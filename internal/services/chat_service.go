package services

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	dm "wayfarer/internal/models/domain_models"
)

const chatFallbackReply = "I can help you find activities, script games, wellness services, dining or attractions, " +
	"or build a full 3-day itinerary. What are you in the mood for?"

// ChatIntent is what a matched rule asks the session to do.
type ChatIntent struct {
	Rule     string
	Category dm.Category
}

// ChatRule matches a folded, tokenized message. Rule order is significant.
// A keyword matches a whole token; a trailing "*" makes it a stem that
// matches any token starting with it.
type ChatRule struct {
	Name     string
	Keywords []string
	Category dm.Category
}

func (r ChatRule) matches(tokens []string) bool {
	for _, tok := range tokens {
		for _, kw := range r.Keywords {
			if keywordMatches(kw, tok) {
				return true
			}
		}
	}
	return false
}

func keywordMatches(kw, tok string) bool {
	if stem, ok := strings.CutSuffix(kw, "*"); ok {
		return stem != "" && strings.HasPrefix(tok, stem)
	}
	return tok == kw
}

// DefaultChatRules: first match wins.
var DefaultChatRules = []ChatRule{
	{Name: "itinerary", Keywords: []string{"itinerar*", "plan", "plans", "planning", "route", "routes", "schedule*", "trip", "trips"}, Category: dm.CategoryItinerary},
	{Name: "relax", Keywords: []string{"relax*", "spa", "spas", "massage*", "wellness", "tired"}, Category: dm.CategoryService},
	{Name: "script", Keywords: []string{"mystery", "mysteries", "script*", "game", "games", "escape*", "puzzle*"}, Category: dm.CategoryScript},
	{Name: "dining", Keywords: []string{"eat", "eating", "food*", "dinner*", "lunch*", "restaurant*", "hungry", "gelato*"}, Category: dm.CategoryDining},
	{Name: "attraction", Keywords: []string{"museum*", "history", "historic*", "sight*", "monument*", "galler*"}, Category: dm.CategoryAttraction},
	{Name: "activity", Keywords: []string{"tour*", "activit*", "experience*", "walk*", "class*"}, Category: dm.CategoryActivity},
}

// ChatShell is the scripted assistant: an append-only log plus a rule table.
type ChatShell struct {
	rules    []ChatRule
	fold     cases.Caser
	messages []dm.ChatMessage
	now      func() time.Time
}

func NewChatShell(rules []ChatRule) *ChatShell {
	if rules == nil {
		rules = DefaultChatRules
	}
	return &ChatShell{
		rules: append([]ChatRule(nil), rules...),
		fold:  cases.Fold(),
		now:   time.Now,
	}
}

// Interpret returns the intent of the first matching rule.
func (c *ChatShell) Interpret(text string) (ChatIntent, bool) {
	tokens := strings.FieldsFunc(c.fold.String(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, rule := range c.rules {
		if rule.matches(tokens) {
			return ChatIntent{Rule: rule.Name, Category: rule.Category}, true
		}
	}
	return ChatIntent{}, false
}

func (c *ChatShell) Append(role dm.ChatRole, content string) dm.ChatMessage {
	msg := dm.ChatMessage{Role: role, Content: content, Timestamp: c.now()}
	c.messages = append(c.messages, msg)
	return msg
}

func (c *ChatShell) Fallback() string { return chatFallbackReply }

func (c *ChatShell) Messages() []dm.ChatMessage {
	out := make([]dm.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *ChatShell) Len() int { return len(c.messages) }
