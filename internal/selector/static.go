package selector

// Static returns a fixed choice.
type Static struct {
	Model   string
	Objects []string
}

// NewStatic creates a selector that always picks model and objects.
func NewStatic(model string, objects []string) *Static {
	return &Static{Model: model, Objects: objects}
}

// SelectModel returns the configured model.
func (s *Static) SelectModel(_ []string) (string, error) {
	if s.Model == "" {
		return "", ErrNoModel
	}
	return s.Model, nil
}

// SelectObjects returns the configured objects whether or not the model
// records them.
func (s *Static) SelectObjects(_ []string) ([]string, error) {
	return append([]string(nil), s.Objects...), nil
}
