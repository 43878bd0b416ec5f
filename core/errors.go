package core

import (
	"errors"
	"fmt"
)

var (
	ErrUnreadable      = errors.New("cannot read file")
	ErrUnwritable      = errors.New("cannot write file")
	ErrInvalidText     = errors.New("file is not valid UTF-8 text")
	ErrInvalidPosition = errors.New("invalid position")
)

// FileError reports a failed open or save of a document.
type FileError struct {
	Op   string // "open" or "save"
	Path string
	Kind error // one of ErrUnreadable, ErrUnwritable, ErrInvalidText
	Err  error // underlying cause, may be nil
}

func (e *FileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %s: %s", e.Op, e.Path, e.Kind, e.Err)
}

func (e *FileError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
