package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/vocaprep/interview-engine/internal/entity"
)

// ValidateStartSession validates StartSessionRequest
func (v *Validator) ValidateStartSession(req *entity.StartSessionRequest) error {
	if req.DomainID == "" {
		return fmt.Errorf("%w: domain_id", entity.ErrMissingField)
	}

	if req.ExperienceLevel == "" {
		return fmt.Errorf("%w: experience_level", entity.ErrMissingField)
	}

	return req.ExperienceLevel.Validate()
}

// ValidateSubmitAnswer validates a text answer submission. An empty answer
// is allowed: the engine treats it as a degenerate transcript, not an error.
func (v *Validator) ValidateSubmitAnswer(req *entity.SubmitAnswerRequest) error {
	return nil
}

// ValidateSubmitAudioAnswer validates an audio answer submission
func (v *Validator) ValidateSubmitAudioAnswer(req *entity.SubmitAudioAnswerRequest) error {
	if req.AudioFile == nil {
		return fmt.Errorf("%w: audio file", entity.ErrMissingField)
	}

	return v.ValidateAudioFile(req.AudioFile)
}

// ValidateAudioFile validates audio file uploads (WAV format only)
func (v *Validator) ValidateAudioFile(file *multipart.FileHeader) error {
	if file == nil {
		return entity.ErrMissingField
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".wav" {
		return fmt.Errorf("%w: %s (only .wav files are allowed)", entity.ErrInvalidExtension, ext)
	}

	if file.Size > v.cfg.MaxAudioFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxAudioFileSize)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" &&
		contentType != "audio/wav" &&
		contentType != "audio/x-wav" &&
		contentType != "application/octet-stream" {
		return fmt.Errorf("%w: content type '%s' (expected audio/wav, audio/x-wav or application/octet-stream)", entity.ErrInvalidExtension, contentType)
	}

	return nil
}
