package attendance

// Apply moves userID into the set matching action and out of the other.
// Adding an id already in the target set is idempotent. Any action outside
// {Present, Absent} fails without mutating the record.
func (r *Record) Apply(userID, action string) error {
	switch action {
	case ActionPresent:
		r.Present = addUnique(r.Present, userID)
		r.Absent = remove(r.Absent, userID)
	case ActionAbsent:
		r.Absent = addUnique(r.Absent, userID)
		r.Present = remove(r.Present, userID)
	default:
		return ErrInvalidAction
	}
	return nil
}

// Validate rejects records that list a user in both sets.
func (r *Record) Validate() error {
	seen := make(map[string]struct{}, len(r.Present))
	for _, id := range r.Present {
		seen[id] = struct{}{}
	}
	for _, id := range r.Absent {
		if _, ok := seen[id]; ok {
			return ErrOverlap
		}
	}
	return nil
}

func addUnique(set []string, id string) []string {
	for _, existing := range set {
		if existing == id {
			return set
		}
	}
	return append(set, id)
}

func remove(set []string, id string) []string {
	out := set[:0]
	for _, existing := range set {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
