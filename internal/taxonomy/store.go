package taxonomy

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"skillmatch/internal/domain/skill"
)

// Store holds the skill graph: one node arena plus adjacency maps per
// relationship kind. Matching treats it as read-mostly; mutations take the
// write lock and queries work on copies, so in-flight scoring always sees a
// consistent view.
type Store struct {
	mu      sync.RWMutex
	skills  map[string]skill.Skill
	out     map[skill.RelationKind]map[string][]string
	in      map[skill.RelationKind]map[string][]string
	rels    []skill.Relationship
	version uint64
}

func NewStore() *Store {
	s := &Store{
		skills: make(map[string]skill.Skill),
		out:    make(map[skill.RelationKind]map[string][]string),
		in:     make(map[skill.RelationKind]map[string][]string),
	}
	for _, k := range []skill.RelationKind{skill.ParentOf, skill.EquivalentTo, skill.PrerequisiteOf} {
		s.out[k] = make(map[string][]string)
		s.in[k] = make(map[string][]string)
	}
	return s
}

// NormalizeID canonicalizes a skill id to its lower-case trimmed form.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func (s *Store) AddSkill(sk skill.Skill) error {
	sk.ID = NormalizeID(sk.ID)
	if sk.ID == "" {
		return ErrEmptySkillID
	}
	if sk.Name == "" {
		sk.Name = sk.ID
	}
	if sk.Difficulty == 0 {
		sk.Difficulty = 5
	}
	if sk.Difficulty < 1 || sk.Difficulty > 10 {
		return fmt.Errorf("%w: %d", ErrInvalidDifficulty, sk.Difficulty)
	}
	if sk.Demand < 0 || sk.Demand > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidDemand, sk.Demand)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.skills[sk.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSkill, sk.ID)
	}
	s.skills[sk.ID] = sk
	s.version++
	return nil
}

func (s *Store) RemoveSkill(id string) error {
	id = NormalizeID(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.skills[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSkill, id)
	}
	delete(s.skills, id)

	for kind := range s.out {
		for _, tgt := range s.out[kind][id] {
			s.in[kind][tgt] = remove(s.in[kind][tgt], id)
		}
		delete(s.out[kind], id)
		for _, src := range s.in[kind][id] {
			s.out[kind][src] = remove(s.out[kind][src], id)
		}
		delete(s.in[kind], id)
	}

	kept := s.rels[:0]
	for _, r := range s.rels {
		if r.Source != id && r.Target != id {
			kept = append(kept, r)
		}
	}
	s.rels = kept
	s.version++
	return nil
}

func (s *Store) AddRelationship(r skill.Relationship) error {
	r.Source = NormalizeID(r.Source)
	r.Target = NormalizeID(r.Target)

	kind, ok := skill.ParseRelationKind(string(r.Kind))
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidKind, r.Kind)
	}
	r.Kind = kind
	if r.Source == r.Target {
		return fmt.Errorf("%w: %s", ErrSelfLoop, r.Source)
	}
	if r.Weight < 0 || r.Weight > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, r.Weight)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.skills[r.Source]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSkill, r.Source)
	}
	if _, ok := s.skills[r.Target]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSkill, r.Target)
	}
	if s.hasEdge(r.Kind, r.Source, r.Target) {
		return fmt.Errorf("%w: %s %s %s", ErrDuplicateRelationship, r.Source, r.Kind, r.Target)
	}

	// Cycle check runs only on insertion: the edge src->tgt closes a cycle
	// exactly when src is already reachable from tgt over same-kind edges.
	if r.Kind == skill.ParentOf || r.Kind == skill.PrerequisiteOf {
		if s.reachable(r.Kind, r.Target, r.Source) {
			return fmt.Errorf("%w: %s %s %s", ErrCycle, r.Source, r.Kind, r.Target)
		}
	}

	s.link(r.Kind, r.Source, r.Target)
	if r.Kind == skill.EquivalentTo {
		// Symmetric kind: keep both directions in the adjacency so queries
		// never need to special-case direction.
		s.link(r.Kind, r.Target, r.Source)
	}
	s.rels = append(s.rels, r)
	s.version++
	return nil
}

func (s *Store) RemoveRelationship(source, target string, kind skill.RelationKind) error {
	source = NormalizeID(source)
	target = NormalizeID(target)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasEdge(kind, source, target) {
		return fmt.Errorf("%w: %s %s %s", ErrUnknownRelationship, source, kind, target)
	}

	s.unlink(kind, source, target)
	if kind == skill.EquivalentTo {
		s.unlink(kind, target, source)
	}

	kept := s.rels[:0]
	for _, r := range s.rels {
		if r.Kind == kind && r.Source == source && r.Target == target {
			continue
		}
		if kind == skill.EquivalentTo && r.Kind == kind && r.Source == target && r.Target == source {
			continue
		}
		kept = append(kept, r)
	}
	s.rels = kept
	s.version++
	return nil
}

func (s *Store) Lookup(id string) (skill.Skill, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sk, ok := s.skills[NormalizeID(id)]
	return sk, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.skills)
}

func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Skills returns a snapshot of all skills ordered by id.
func (s *Store) Skills() []skill.Skill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]skill.Skill, 0, len(s.skills))
	for _, sk := range s.skills {
		out = append(out, sk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Relationships returns a snapshot of all relationships in a stable order.
func (s *Store) Relationships() []skill.Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]skill.Relationship, len(s.rels))
	copy(out, s.rels)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Target < b.Target
	})
	return out
}

// Equivalents returns every skill transitively reachable over EQUIVALENT_TO
// edges, excluding the queried id itself, sorted. Unknown ids yield nil.
func (s *Store) Equivalents(id string) []string {
	id = NormalizeID(id)

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{id: true}
	queue := []string{id}
	var out []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range s.out[skill.EquivalentTo][cur] {
			if seen[next] {
				continue
			}
			seen[next] = true
			out = append(out, next)
			queue = append(queue, next)
		}
	}
	sort.Strings(out)
	return out
}

// Prerequisites returns the transitive prerequisites of a skill in learning
// order: every prerequisite appears before anything that depends on it.
func (s *Store) Prerequisites(id string) []string {
	id = NormalizeID(id)

	s.mu.RLock()
	defer s.mu.RUnlock()

	visited := map[string]bool{id: true}
	var order []string
	var visit func(cur string)
	visit = func(cur string) {
		deps := append([]string(nil), s.in[skill.PrerequisiteOf][cur]...)
		sort.Strings(deps)
		for _, dep := range deps {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			visit(dep)
			order = append(order, dep)
		}
	}
	visit(id)
	return order
}

// DirectPrerequisites returns only the immediate prerequisites, sorted.
func (s *Store) DirectPrerequisites(id string) []string {
	id = NormalizeID(id)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]string(nil), s.in[skill.PrerequisiteOf][id]...)
	sort.Strings(out)
	return out
}

// Ancestors follows PARENT_OF edges upward toward broader skills.
func (s *Store) Ancestors(id string) []string {
	return s.closure(skill.ParentOf, id, false)
}

// Descendants follows PARENT_OF edges downward toward narrower skills.
func (s *Store) Descendants(id string) []string {
	return s.closure(skill.ParentOf, id, true)
}

func (s *Store) closure(kind skill.RelationKind, id string, forward bool) []string {
	id = NormalizeID(id)

	s.mu.RLock()
	defer s.mu.RUnlock()

	adj := s.in[kind]
	if forward {
		adj = s.out[kind]
	}

	seen := map[string]bool{id: true}
	queue := []string{id}
	var out []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if seen[next] {
				continue
			}
			seen[next] = true
			out = append(out, next)
			queue = append(queue, next)
		}
	}
	sort.Strings(out)
	return out
}

func (s *Store) hasEdge(kind skill.RelationKind, source, target string) bool {
	for _, t := range s.out[kind][source] {
		if t == target {
			return true
		}
	}
	return false
}

func (s *Store) link(kind skill.RelationKind, source, target string) {
	s.out[kind][source] = append(s.out[kind][source], target)
	s.in[kind][target] = append(s.in[kind][target], source)
}

func (s *Store) unlink(kind skill.RelationKind, source, target string) {
	s.out[kind][source] = remove(s.out[kind][source], target)
	s.in[kind][target] = remove(s.in[kind][target], source)
}

// reachable reports whether to can be reached from from over kind edges.
// Iterative DFS bounded by graph size.
func (s *Store) reachable(kind skill.RelationKind, from, to string) bool {
	if from == to {
		return true
	}
	seen := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range s.out[kind][cur] {
			if next == to {
				return true
			}
			if seen[next] {
				continue
			}
			seen[next] = true
			stack = append(stack, next)
		}
	}
	return false
}

func remove(list []string, v string) []string {
	out := list[:0]
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}
