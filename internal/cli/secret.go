package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/ovumcalendar/internal/security"
)

// RunGenerateSecretCommand prints a fresh SECRET_KEY assignment.
func RunGenerateSecretCommand(out io.Writer, length int) error {
	if length <= 0 {
		length = security.DefaultSecretKeyLength
	}
	secret, err := security.GenerateSecretKey(length)
	if err != nil {
		return fmt.Errorf("generate secret key: %w", err)
	}

	if _, err := fmt.Fprintf(out, "SECRET_KEY=%s\n", secret); err != nil {
		return fmt.Errorf("write secret key: %w", err)
	}
	return nil
}
