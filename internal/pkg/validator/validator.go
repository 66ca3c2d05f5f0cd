package validator

import (
	"github.com/vocaprep/interview-engine/internal/config"
)

// Validator checks incoming requests against upload limits and required
// fields before they reach the usecase layer.
type Validator struct {
	cfg config.UploadConfig
}

func NewValidator(cfg config.UploadConfig) *Validator {
	return &Validator{cfg: cfg}
}
