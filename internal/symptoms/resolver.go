// Package symptoms resolves free-text symptom lists to candidate conditions
// using a static knowledge base. Resolution is pure and safe for concurrent use.
package symptoms

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type OutcomeKind int

const (
	// OutcomeAnswer carries a locally computed answer.
	OutcomeAnswer OutcomeKind = iota
	// OutcomeNoLocalMatch means no token matched; the caller should escalate.
	OutcomeNoLocalMatch
	// OutcomeEmptyQuery means the input was blank; the caller should reject it.
	OutcomeEmptyQuery
)

func (kind OutcomeKind) String() string {
	switch kind {
	case OutcomeAnswer:
		return "answer"
	case OutcomeNoLocalMatch:
		return "no_local_match"
	case OutcomeEmptyQuery:
		return "empty_query"
	default:
		return "unknown"
	}
}

const (
	AnswerPrefix          = "🩺 Based on your symptoms, possible conditions are: "
	NoCommonConditionText = "⚠️ No single condition matches all those symptoms together."
)

type Outcome struct {
	Kind OutcomeKind
	Text string
	// Conditions lists the surviving candidates in answer order. Empty when
	// the matched symptoms share no condition.
	Conditions []string
}

var tokenDelimiterPattern = regexp.MustCompile(`[,;]+|\band\b|\+|\n`)

type Resolver struct {
	knowledgeBase map[string][]string
	synonyms      map[string]string
}

var defaultResolver = NewResolver(defaultKnowledgeBase, defaultSynonyms)

// Default returns the resolver backed by the built-in tables.
func Default() *Resolver {
	return defaultResolver
}

// NewResolver copies both tables so later mutation by the caller cannot leak
// into resolution.
func NewResolver(knowledgeBase map[string][]string, synonyms map[string]string) *Resolver {
	kb := make(map[string][]string, len(knowledgeBase))
	for key, conditions := range knowledgeBase {
		kb[key] = append([]string(nil), conditions...)
	}
	aliases := make(map[string]string, len(synonyms))
	for alias, canonical := range synonyms {
		aliases[alias] = canonical
	}
	return &Resolver{knowledgeBase: kb, synonyms: aliases}
}

func (resolver *Resolver) Resolve(query string) Outcome {
	if strings.TrimSpace(query) == "" {
		return Outcome{Kind: OutcomeEmptyQuery}
	}

	var candidates []string
	anyMatched := false
	for _, token := range Tokenize(query) {
		conditions, ok := resolver.knowledgeBase[resolver.Normalize(token)]
		if !ok {
			continue
		}
		if !anyMatched {
			anyMatched = true
			candidates = uniqueInOrder(conditions)
			continue
		}
		candidates = intersectInOrder(candidates, conditions)
	}

	if !anyMatched {
		return Outcome{Kind: OutcomeNoLocalMatch}
	}
	if len(candidates) == 0 {
		return Outcome{Kind: OutcomeAnswer, Text: NoCommonConditionText, Conditions: []string{}}
	}
	return Outcome{
		Kind:       OutcomeAnswer,
		Text:       AnswerPrefix + strings.Join(candidates, ", "),
		Conditions: candidates,
	}
}

// Tokenize splits a query on commas, semicolons, the word "and", "+" and
// newlines. Tokens come back lowercased and trimmed; empty ones are dropped.
func Tokenize(query string) []string {
	parts := tokenDelimiterPattern.Split(strings.ToLower(query), -1)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}

// Normalize maps a single token to its canonical knowledge base spelling.
// Unknown tokens are returned lowercased and trimmed.
func (resolver *Resolver) Normalize(token string) string {
	normalized := strings.TrimSpace(strings.ToLower(norm.NFC.String(token)))
	if canonical, ok := resolver.synonyms[normalized]; ok {
		return canonical
	}
	return normalized
}

// Symptoms returns the known symptom keys in lexical order.
func (resolver *Resolver) Symptoms() []string {
	keys := make([]string, 0, len(resolver.knowledgeBase))
	for key := range resolver.knowledgeBase {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (resolver *Resolver) Conditions(symptom string) ([]string, bool) {
	conditions, ok := resolver.knowledgeBase[resolver.Normalize(symptom)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), conditions...), true
}

// UnresolvedAliases lists synonym entries whose target is not a knowledge
// base key, sorted by alias.
func (resolver *Resolver) UnresolvedAliases() []string {
	unresolved := make([]string, 0)
	for alias, canonical := range resolver.synonyms {
		if _, ok := resolver.knowledgeBase[canonical]; !ok {
			unresolved = append(unresolved, alias)
		}
	}
	sort.Strings(unresolved)
	return unresolved
}

func uniqueInOrder(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		unique = append(unique, value)
	}
	return unique
}

func intersectInOrder(current []string, next []string) []string {
	allowed := make(map[string]struct{}, len(next))
	for _, value := range next {
		allowed[value] = struct{}{}
	}
	survivors := make([]string, 0, len(current))
	for _, value := range current {
		if _, ok := allowed[value]; ok {
			survivors = append(survivors, value)
		}
	}
	return survivors
}
