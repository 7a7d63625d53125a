package schema

// JoinStep is one direct hop in a resolved association path. Through
// associations never appear as steps; they are expanded before planning.
type JoinStep struct {
	Association string
	Target      string
	Table       string
	OwnerKey    string
	RelatedKey  string
	Cardinality Cardinality
}

// Resolve walks an association-name path starting at base and returns the
// ordered physical join steps it requires. Through associations expand
// transitively, so a single logical hop may contribute several steps. An empty
// path resolves to no steps (the filter or sort applies to the base relation).
func Resolve(r *Registry, base Schema, path []string) ([]JoinStep, error) {
	if len(path) == 0 {
		return nil, nil
	}

	steps := make([]JoinStep, 0, len(path))
	current := base
	for _, name := range path {
		expanded, next, err := expand(r, current, name, make(map[string]struct{}))
		if err != nil {
			return nil, err
		}
		steps = append(steps, expanded...)
		current = next
	}
	return steps, nil
}

// Terminal returns the schema a resolved path lands on. With no steps that is
// the base relation itself.
func Terminal(r *Registry, base Schema, steps []JoinStep) (Schema, bool) {
	if len(steps) == 0 {
		return base, true
	}
	return r.Schema(steps[len(steps)-1].Target)
}

// expand resolves a single association name on s into join steps and the
// schema the walk continues from. The seen set spans one logical hop and
// bounds through-chain recursion.
func expand(r *Registry, s Schema, name string, seen map[string]struct{}) ([]JoinStep, Schema, error) {
	assoc, ok := s.Association(name)
	if !ok {
		return nil, Schema{}, &UnknownAssociationError{Schema: s.Name, Association: name}
	}

	key := s.Name + "." + name
	if _, cyclic := seen[key]; cyclic {
		return nil, Schema{}, &CyclicAssociationError{Schema: s.Name, Association: name}
	}
	seen[key] = struct{}{}

	if !assoc.IsThrough() {
		target, ok := r.Schema(assoc.Target)
		if !ok {
			return nil, Schema{}, &UnknownAssociationError{Schema: s.Name, Association: name}
		}
		step := JoinStep{
			Association: assoc.Name,
			Target:      assoc.Target,
			Table:       target.Table,
			OwnerKey:    assoc.OwnerKey,
			RelatedKey:  assoc.RelatedKey,
			Cardinality: assoc.Cardinality,
		}
		return []JoinStep{step}, target, nil
	}

	var out []JoinStep
	current := s
	for _, hop := range assoc.Through {
		sub, next, err := expand(r, current, hop, seen)
		if err != nil {
			return nil, Schema{}, err
		}
		out = append(out, sub...)
		current = next
	}
	return out, current, nil
}
