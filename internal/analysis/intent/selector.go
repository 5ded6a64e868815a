// Package intent maps free-text chat utterances to the assistant's canned responses.
package intent

import (
	"strings"

	"github.com/samber/lo"

	"github.com/propnest/realty/backend/internal/model/chat"
)

// Response is what the assistant says back: text, optional chips and an optional navigation request.
type Response struct {
	Text        string           `json:"text"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Navigation  *chat.Navigation `json:"navigation,omitempty"`
}

// Clone returns a copy that callers may modify freely.
func (r Response) Clone() Response {
	out := r
	if r.Suggestions != nil {
		out.Suggestions = append([]string(nil), r.Suggestions...)
	}
	if r.Navigation != nil {
		nav := r.Navigation.Clone()
		out.Navigation = &nav
	}
	return out
}

// Rule maps a keyword set to a response. A rule matches when the lowercased
// utterance contains any of its keywords.
type Rule struct {
	Name     string
	Keywords []string
	Response Response

	// resolve builds the response from the normalized utterance instead of Response.
	resolve func(normalized string) Response
}

func (r Rule) matches(normalized string) bool {
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// Selector picks exactly one response per utterance by scanning its rules in order.
type Selector struct {
	rules    []Rule
	fallback Response
}

// NewSelector returns a selector over the built-in rule table.
func NewSelector() *Selector {
	return &Selector{rules: defaultRules(), fallback: defaultFallback()}
}

var defaultSelector = NewSelector()

// Select runs the built-in selector. It never fails.
func Select(utterance string) Response {
	return defaultSelector.Select(utterance)
}

// Select returns the response of the first rule whose keywords occur in the
// utterance, or the fallback when none do. Only case is normalized.
func (s *Selector) Select(utterance string) Response {
	resp, _ := s.Match(utterance)
	return resp
}

// Match is Select that also reports the name of the rule that fired ("" for the fallback).
func (s *Selector) Match(utterance string) (Response, string) {
	normalized := strings.ToLower(utterance)

	for _, rule := range s.rules {
		if !rule.matches(normalized) {
			continue
		}
		if rule.resolve != nil {
			return rule.resolve(normalized), rule.Name
		}
		return rule.Response.Clone(), rule.Name
	}

	return s.fallback.Clone(), ""
}

// Rules returns a copy of the rule table in priority order.
func (s *Selector) Rules() []Rule {
	return append([]Rule(nil), s.rules...)
}

// Fallback returns the response used when no rule matches.
func (s *Selector) Fallback() Response {
	return s.fallback.Clone()
}

// resolveLocation interpolates the first known city found in the utterance,
// or asks the user to pick one.
func resolveLocation(normalized string) Response {
	city, ok := lo.Find(knownCities, func(c string) bool {
		return strings.Contains(normalized, c)
	})
	if !ok {
		return Response{
			Text:        "Which city are you interested in? We have listings in all major metros.",
			Suggestions: append([]string(nil), citySuggestions...),
		}
	}

	display := strings.Join(lo.Map(strings.Fields(city), func(word string, _ int) string {
		return lo.Capitalize(word)
	}), " ")

	return Response{
		Text:       "Here are our latest properties in " + display + ". Taking you to the listings now!",
		Navigation: navigate(chat.ViewSearch, map[string]string{"location": city}),
	}
}
