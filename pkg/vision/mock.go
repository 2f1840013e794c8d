package vision

// MockDetector replays a scripted sequence of detection results.
// Useful for tests and demos without a camera or model.
type MockDetector struct {
	// Script is returned one entry per Detect call. After the script is
	// exhausted the last entry repeats.
	Script [][]BoundingBox

	// Err, if set, is returned by every Detect call.
	Err error

	calls int
}

// Detect returns the next scripted result.
func (m *MockDetector) Detect(jpeg []byte) ([]BoundingBox, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Script) == 0 {
		return nil, nil
	}

	i := m.calls
	if i >= len(m.Script) {
		i = len(m.Script) - 1
	}
	m.calls++
	return m.Script[i], nil
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Close is a no-op.
func (m *MockDetector) Close() error {
	return nil
}
