package ast

import "fmt"

// Clone returns a deep structural copy of n. Nodes are not mutated after
// parsing, so copies are only needed by callers that want to edit a tree.
func Clone(n Node) Node {
	switch x := n.(type) {
	case nil:
		return nil
	case *Literal:
		c := *x
		return &c
	case *Wildcard:
		c := *x
		return &c
	case *Range:
		c := *x
		return &c
	case *CharacterClass:
		members := make([]ClassMember, len(x.Members))
		for i, m := range x.Members {
			members[i] = Clone(m).(ClassMember)
		}
		return &CharacterClass{Whitelist: x.Whitelist, Members: members}
	case *Sequence:
		return cloneSequence(x)
	case *Group:
		return &Group{Body: cloneSequence(x.Body)}
	case *Alternation:
		return &Alternation{Left: Clone(x.Left), Right: Clone(x.Right)}
	case *Quantifier:
		c := *x
		c.Body = Clone(x.Body)
		return &c
	default:
		panic(fmt.Sprintf("ast: cannot clone node of type %T", n))
	}
}

func cloneSequence(s *Sequence) *Sequence {
	terms := make([]Node, len(s.Terms))
	for i, t := range s.Terms {
		terms[i] = Clone(t)
	}
	return &Sequence{Terms: terms}
}

// CloneAll clones every node of a term list.
func CloneAll(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(n)
	}
	return out
}
