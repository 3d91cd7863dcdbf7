package validator

// Registry holds rules in registration order. Order matters: findings are
// reported in the sequence rules were registered, which downstream consumers
// rely on.
type Registry struct {
	rules []Rule
	byKey map[string]Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]Rule)}
}

// Register appends a rule; a rule with a duplicate key replaces the old
// entry in place.
func (r *Registry) Register(rule Rule) {
	if _, exists := r.byKey[rule.RuleKey()]; exists {
		for i, existing := range r.rules {
			if existing.RuleKey() == rule.RuleKey() {
				r.rules[i] = rule
				break
			}
		}
	} else {
		r.rules = append(r.rules, rule)
	}
	r.byKey[rule.RuleKey()] = rule
}

// Get returns the rule for a given key, or nil if not found.
func (r *Registry) Get(key string) Rule {
	return r.byKey[key]
}

// All returns the registered rules in registration order.
func (r *Registry) All() []Rule {
	return r.rules
}
