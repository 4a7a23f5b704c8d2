package pdfextract

// MockExtractor returns canned text or an error. Calls counts invocations.
type MockExtractor struct {
	Text  string
	Err   error
	Calls int
}

// NewMockExtractor creates a MockExtractor.
func NewMockExtractor(text string, err error) *MockExtractor {
	return &MockExtractor{Text: text, Err: err}
}

func (m *MockExtractor) ExtractText(data []byte) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// MockValidator returns a canned page count or error.
type MockValidator struct {
	Pages int
	Err   error
}

func (m *MockValidator) Validate(data []byte) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Pages, nil
}
