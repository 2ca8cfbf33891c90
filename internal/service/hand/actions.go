package hand

import "strings"

// ParsedActions groups the action tokens and revealed community cards
// of a hand by street.
type ParsedActions struct {
	Preflop   []string
	Flop      []string
	Turn      []string
	River     []string
	Community CommunityCards
}

type CommunityCards struct {
	Flop  []string
	Turn  []string
	River []string
}

// ParseActionSequence splits the compact action notation into
// per-street structure. Streets are separated by "/"; a street segment
// may start with "Flop:", "Turn:" or "River:" followed by a bracketed
// card list, the rest is whitespace-separated action tokens:
//
//	r200 c c / Flop: [Ks,Qd,Jc] / b400 c / Turn: [2h] / x x / River: [8s] / x b1000 f
//
// Nothing consumes the result yet; the winnings calculator will once it
// grows a real evaluator.
func ParseActionSequence(sequence string) ParsedActions {
	var parsed ParsedActions
	current := "preflop"

	for _, segment := range strings.Split(sequence, "/") {
		segment = strings.TrimSpace(segment)

		var actions string
		switch {
		case strings.Contains(segment, "Flop:"):
			current = "flop"
			cards, rest := splitBoard(segment)
			if cards != "" {
				parsed.Community.Flop = splitCards(cards)
			}
			actions = rest
		case strings.Contains(segment, "Turn:"):
			current = "turn"
			cards, rest := splitBoard(segment)
			if cards != "" {
				parsed.Community.Turn = []string{cards}
			}
			actions = rest
		case strings.Contains(segment, "River:"):
			current = "river"
			cards, rest := splitBoard(segment)
			if cards != "" {
				parsed.Community.River = []string{cards}
			}
			actions = rest
		default:
			actions = segment
		}

		if actions == "" {
			continue
		}
		tokens := strings.Fields(actions)
		switch current {
		case "preflop":
			parsed.Preflop = tokens
		case "flop":
			parsed.Flop = tokens
		case "turn":
			parsed.Turn = tokens
		case "river":
			parsed.River = tokens
		}
	}

	return parsed
}

// splitBoard separates the bracketed card list from the action tokens
// that follow it within one street segment.
func splitBoard(segment string) (cards, rest string) {
	open := strings.Index(segment, "[")
	end := strings.Index(segment, "]")
	if open >= 0 && end > open {
		cards = segment[open+1 : end]
	}
	if end >= 0 && end+1 < len(segment) {
		rest = strings.TrimSpace(segment[end+1:])
	}
	return cards, rest
}

func splitCards(list string) []string {
	parts := strings.Split(list, ",")
	cards := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			cards = append(cards, part)
		}
	}
	return cards
}
