package store

// MockHeaderAliasStore is a mock implementation of AliasLoader for testing.
type MockHeaderAliasStore struct {
	Aliases   Aliases
	LoadError error
}

// LoadHeaderAliases returns a copy of the mock aliases, or the defaults when none are set.
func (m *MockHeaderAliasStore) LoadHeaderAliases() (Aliases, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.Aliases == nil {
		return DefaultAliases(), nil
	}
	return Aliases{}.Merge(m.Aliases), nil
}
