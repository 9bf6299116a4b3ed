package markov

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// sumTol is how far the initial distribution may drift from 1.
const sumTol = 1e-6

// Parse turns a textual chain description into a Chain. The text has
// three ordered sections introduced by case-insensitive headers:
//
//	States: A, B, C
//	Initial distribution: uniform        (or "A : 0.5, B : 0.5, ...")
//	Rates: A -> B : 2.5, B -> A : 1.0
//
// Section bodies may span multiple lines; blank lines are ignored. The
// returned error wraps exactly one of the sentinel errors in errors.go.
func Parse(text string) (*Chain, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	sections, err := splitSections(text)
	if err != nil {
		return nil, err
	}

	c := &Chain{index: make(map[string]int)}
	if err := parseStates(c, sections[0]); err != nil {
		return nil, err
	}
	if err := parseInitial(c, sections[1]); err != nil {
		return nil, err
	}
	if err := parseRates(c, sections[2]); err != nil {
		return nil, err
	}
	return c, nil
}

// sectionHeaders maps a lowercase header prefix to its section slot.
var sectionHeaders = []struct {
	prefix string
	idx    int
}{
	{"states:", 0},
	{"initial distribution:", 1},
	{"rates:", 2},
	{"rate:", 2},
}

// splitSections cuts the text into the three section bodies, enforcing
// the States -> Initial distribution -> Rates order.
func splitSections(text string) ([3]string, error) {
	var bodies [3]string
	current := -1

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		matched := false
		for _, h := range sectionHeaders {
			if len(trimmed) >= len(h.prefix) && strings.EqualFold(trimmed[:len(h.prefix)], h.prefix) {
				if h.idx != current+1 {
					return bodies, fmt.Errorf("%w: %q", ErrMissingSection, strings.TrimSuffix(h.prefix, ":"))
				}
				current = h.idx
				bodies[current] += " " + trimmed[len(h.prefix):]
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if current < 0 {
			return bodies, fmt.Errorf("%w: text before States header", ErrMissingSection)
		}
		bodies[current] += " " + trimmed
	}

	if current != 2 {
		return bodies, fmt.Errorf("%w: expected States, Initial distribution, Rates", ErrMissingSection)
	}
	return bodies, nil
}

func parseStates(c *Chain, body string) error {
	for _, field := range strings.Split(body, ",") {
		name := strings.TrimSpace(field)
		if name == "" {
			continue
		}
		if _, dup := c.index[name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateState, name)
		}
		c.index[name] = len(c.States)
		c.States = append(c.States, name)
	}
	if len(c.States) == 0 {
		return ErrEmptyStates
	}
	return nil
}

func parseInitial(c *Chain, body string) error {
	n := len(c.States)
	c.Initial = make([]float64, n)

	if strings.EqualFold(strings.TrimSpace(body), "uniform") {
		for i := range c.Initial {
			c.Initial[i] = 1 / float64(n)
		}
		return nil
	}

	sum := 0.0
	for _, field := range strings.Split(body, ",") {
		for _, entry := range splitPairs(field) {
			name, value, ok := strings.Cut(entry, ":")
			if !ok {
				return fmt.Errorf("%w: %q", ErrInvalidProbability, entry)
			}
			idx, known := c.index[strings.TrimSpace(name)]
			if !known {
				return fmt.Errorf("%w: %q in initial distribution", ErrUnknownState, strings.TrimSpace(name))
			}
			p, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil || math.IsNaN(p) || p < 0 || p > 1 {
				return fmt.Errorf("%w: %q", ErrInvalidProbability, entry)
			}
			c.Initial[idx] += p
			sum += p
		}
	}

	if math.Abs(sum-1) > sumTol {
		return fmt.Errorf("%w: got %g", ErrDistributionSum, sum)
	}
	return nil
}

// splitPairs cuts a comma field into its "state : probability" pairs.
// Pairs may also be separated by whitespace alone, so a field holding
// several colons is re-split: the token after each inner colon is the
// probability, and whatever follows it starts the next state name.
func splitPairs(field string) []string {
	parts := strings.Split(field, ":")
	if len(parts) <= 2 {
		if strings.TrimSpace(field) == "" {
			return nil
		}
		return []string{strings.TrimSpace(field)}
	}

	pairs := make([]string, 0, len(parts)-1)
	name := parts[0]
	for _, part := range parts[1 : len(parts)-1] {
		tokens := strings.Fields(part)
		if len(tokens) < 2 {
			// No room for both a probability and the next name;
			// hand the raw field back so the caller reports it.
			return []string{strings.TrimSpace(field)}
		}
		pairs = append(pairs, name+" : "+tokens[0])
		name = strings.Join(tokens[1:], " ")
	}
	return append(pairs, name+" : "+parts[len(parts)-1])
}

func parseRates(c *Chain, body string) error {
	for _, field := range strings.Split(body, ",") {
		entry := strings.TrimSpace(field)
		if entry == "" {
			continue
		}
		arrow, rest, ok := strings.Cut(entry, "->")
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidRate, entry)
		}
		to, value, ok := strings.Cut(rest, ":")
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidRate, entry)
		}

		fromName := strings.TrimSpace(arrow)
		toName := strings.TrimSpace(to)
		from, known := c.index[fromName]
		if !known {
			return fmt.Errorf("%w: %q in rates", ErrUnknownState, fromName)
		}
		toIdx, known := c.index[toName]
		if !known {
			return fmt.Errorf("%w: %q in rates", ErrUnknownState, toName)
		}
		if from == toIdx {
			return fmt.Errorf("%w: %q", ErrSelfLoop, fromName)
		}

		rate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidRate, entry)
		}

		c.Transitions = append(c.Transitions, Transition{From: from, To: toIdx, Rate: rate})
	}
	return nil
}
