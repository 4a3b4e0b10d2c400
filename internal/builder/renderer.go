package builder

import "github.com/iho/gosepa/internal/domain"

// Renderer renders transfer files into pain XML using a fresh
// DocumentBuilder per call, making it safe for concurrent use.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render drives the visitor traversal over the file and serializes the
// resulting document.
func (r *Renderer) Render(file *domain.TransferFile) ([]byte, error) {
	b := New()
	if err := file.Accept(b); err != nil {
		return nil, err
	}

	return b.Serialize()
}
