package encryption

import (
	"errors"
	"fmt"

	"github.com/idelchi/wcrypt/internal/keymat"
)

var (
	// ErrIO matches every *IOError.
	ErrIO = errors.New("i/o failure")
	// ErrInvalidArgument is returned for unusable arguments, such as an output path equal to the input path.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidKey is returned when the key source yields no complete word.
	ErrInvalidKey = keymat.ErrInvalidKey
	// ErrResourceExhausted is returned when chunk buffers cannot be allocated.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// Role names the file an I/O failure happened on.
type Role string

const (
	// RoleData is the input file being transformed.
	RoleData Role = "data"
	// RoleKey is the key file.
	RoleKey Role = "key"
	// RoleOutput is the file being written.
	RoleOutput Role = "output"
)

// IOError reports an open, read or write failure on one of the files of an operation.
type IOError struct {
	Role Role
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Role, e.Err)
	}

	return fmt.Sprintf("%s %s file %q: %v", e.Op, e.Role, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO //nolint:errorlint,err113
}
