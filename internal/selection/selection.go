// Package selection tracks the set of issue keys a user has accumulated
// while browsing views, preserving the order keys were first added in.
package selection

// State holds the selected issue keys. The ordered slice and the membership
// set always contain exactly the same keys; a key appears at most once.
type State struct {
	keys []string
	set  map[string]struct{}
}

func NewState() *State {
	return &State{set: make(map[string]struct{})}
}

// Add appends key to the selection. It reports false and leaves the
// selection untouched when the key is already selected.
func (s *State) Add(key string) bool {
	if _, ok := s.set[key]; ok {
		return false
	}
	s.set[key] = struct{}{}
	s.keys = append(s.keys, key)
	return true
}

// SyncView reconciles the selection with the outcome of one view prompt.
// Newly checked keys are appended in the order given; keys visible in the
// view but left unchecked are removed; keys not shown in the view are
// untouched. It reports whether the membership changed.
func (s *State) SyncView(viewKeys, checkedKeys []string) bool {
	changed := false

	for _, key := range checkedKeys {
		if s.Add(key) {
			changed = true
		}
	}

	checked := make(map[string]struct{}, len(checkedKeys))
	for _, key := range checkedKeys {
		checked[key] = struct{}{}
	}
	for _, key := range viewKeys {
		if _, isChecked := checked[key]; isChecked {
			continue
		}
		if _, selected := s.set[key]; selected {
			delete(s.set, key)
			changed = true
		}
	}

	if changed {
		s.compact()
	}
	return changed
}

// Review replaces the selection with the kept keys, preserving the relative
// order of survivors. Keys not previously selected are ignored. It reports
// whether the membership changed.
func (s *State) Review(keptKeys []string) bool {
	kept := make(map[string]struct{}, len(keptKeys))
	for _, key := range keptKeys {
		kept[key] = struct{}{}
	}

	changed := false
	for key := range s.set {
		if _, ok := kept[key]; !ok {
			delete(s.set, key)
			changed = true
		}
	}
	if changed {
		s.compact()
	}
	return changed
}

// compact drops ordered keys that are no longer members.
func (s *State) compact() {
	filtered := s.keys[:0]
	for _, key := range s.keys {
		if _, ok := s.set[key]; ok {
			filtered = append(filtered, key)
		}
	}
	s.keys = filtered
}

func (s *State) Contains(key string) bool {
	_, ok := s.set[key]
	return ok
}

// Keys returns the selected keys in insertion order.
func (s *State) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *State) Len() int {
	return len(s.keys)
}
