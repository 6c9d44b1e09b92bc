package cli

import (
	"errors"

	"github.com/nctl-dev/nctl/namecheap"
)

// Exit codes. Scripts branch on these to tell bad input from registrar
// rejections from network trouble.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitValidation = 2
	ExitRemote     = 3
	ExitTransport  = 4
)

// ExitCode maps an error to the process exit code. Validation errors
// (local, fix the input) rank before remote rejections (API said no)
// before transport and parse failures (the call never completed cleanly).
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		ve *namecheap.ValidationError
		ae *namecheap.APIError
		te *namecheap.TransportError
		pe *namecheap.ParseError
	)
	switch {
	case errors.As(err, &ve):
		return ExitValidation
	case errors.As(err, &ae):
		return ExitRemote
	case errors.As(err, &te), errors.As(err, &pe):
		return ExitTransport
	}
	return ExitError
}
