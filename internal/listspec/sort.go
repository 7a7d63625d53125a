package listspec

import (
	"strings"

	"listql/internal/plan"
	"listql/internal/schema"
)

type sortToken struct {
	key       string
	direction plan.Direction
}

// parseSortToken splits "key" or "key:direction". A token that cannot be
// split that way is malformed; an unknown key is not (it is discarded later).
func parseSortToken(token string) (sortToken, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" || strings.Count(trimmed, ":") > 1 {
		return sortToken{}, &MalformedSortTokenError{Token: token}
	}

	key, rawDir, hasDir := strings.Cut(trimmed, ":")
	if key == "" {
		return sortToken{}, &MalformedSortTokenError{Token: token}
	}
	if !hasDir {
		return sortToken{key: key, direction: plan.Asc}, nil
	}
	dir, ok := plan.ParseDirection(rawDir)
	if !ok {
		return sortToken{}, &MalformedSortTokenError{Token: token}
	}
	return sortToken{key: key, direction: dir}, nil
}

// buildOrderTerms computes the effective sort. Valid explicit tokens win
// outright: when at least one request token matches a spec, default-flagged
// specs contribute nothing. Tokens without a matching spec are discarded.
func (it *Interpreter) buildOrderTerms(table *plan.BindingTable, base schema.Schema, sorts []SortSpec, tokens []string) ([]plan.OrderTerm, error) {
	byKey := make(map[string]SortSpec, len(sorts))
	for _, spec := range sorts {
		byKey[spec.Key] = spec
	}

	var terms []plan.OrderTerm
	for _, raw := range tokens {
		token, err := parseSortToken(raw)
		if err != nil {
			return nil, err
		}
		spec, ok := byKey[token.key]
		if !ok {
			continue
		}
		term, err := it.buildSort(table, base, spec, token.direction)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	if len(terms) > 0 {
		return terms, nil
	}

	for _, spec := range sorts {
		if !spec.IsDefault {
			continue
		}
		term, err := it.buildSort(table, base, spec, spec.Direction)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return terms, nil
}

func (it *Interpreter) buildSort(table *plan.BindingTable, base schema.Schema, spec SortSpec, dir plan.Direction) (plan.OrderTerm, error) {
	depth, terminal, err := it.bindPath(table, base, spec.Path)
	if err != nil {
		return plan.OrderTerm{}, err
	}
	if _, ok := terminal.Field(spec.Field); !ok {
		return plan.OrderTerm{}, &schema.UnknownFieldError{Schema: terminal.Name, Field: spec.Field}
	}
	return plan.NewOrderTerm(depth, spec.Field, dir)
}
