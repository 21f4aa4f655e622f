// Package clipboard copies rendered trees to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

const copyErrorFormat = "copy to clipboard: %w"

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard Service.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard. It fails when no clipboard utility is available.
func (service *Service) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf(copyErrorFormat, ErrUnsupported)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf(copyErrorFormat, err)
	}
	return nil
}

var _ Copier = (*Service)(nil)
