package auth

// MockStore is an in-memory auth store for testing.
type MockStore struct {
	tokens map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{tokens: make(map[string]string)}
}

func (m *MockStore) SetToken(key string, token string) error {
	m.tokens[NormalizeKey(key)] = token
	return nil
}

func (m *MockStore) GetToken(key string) (string, error) {
	token, ok := m.tokens[NormalizeKey(key)]
	if !ok {
		return "", ErrTokenNotFound
	}
	return token, nil
}

func (m *MockStore) DeleteToken(key string) error {
	key = NormalizeKey(key)
	if _, ok := m.tokens[key]; !ok {
		return ErrTokenNotFound
	}
	delete(m.tokens, key)
	return nil
}
