package reportcli

import (
	"errors"
)

// Sentinel kinds for CLI errors.
var (
	ErrUnknownSection = errors.New("unknown section")
	ErrRemote         = errors.New("remote request failed")
	ErrCritiqueWait   = errors.New("critique not finished in time")
)
