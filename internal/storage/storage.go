package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("stored file not found")
	ErrInvalidName = errors.New("invalid file name")
	ErrExists      = errors.New("stored file already exists")
)

// FileStorage keeps uploaded artifacts. Save returns the reference that
// Open and Delete accept later and never replaces an existing file.
type FileStorage interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
	Delete(ctx context.Context, ref string) error
	// Clear removes every stored file and reports how many were removed
	Clear(ctx context.Context) (int, error)
}

// BaseName strips any directory part a client sent with a filename
func BaseName(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	return strings.TrimSpace(path.Base(filename))
}

// AnswerFileName is the stored name of a file submitted for a question
func AnswerFileName(submissionID, questionID uint, filename string) string {
	return fmt.Sprintf("answer_%d_%d_%s", submissionID, questionID, BaseName(filename))
}

// LessonFileName is a unique stored name for a lesson attachment
func LessonFileName(filename string) string {
	return fmt.Sprintf("lesson_%s_%s", uuid.NewString(), BaseName(filename))
}

// IsValidName reports whether filename still names a file once its
// directory part is stripped
func IsValidName(filename string) bool {
	_, err := validateName(filename)
	return err == nil
}

func validateName(name string) (string, error) {
	name = BaseName(name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return "", ErrInvalidName
	}
	return name, nil
}
