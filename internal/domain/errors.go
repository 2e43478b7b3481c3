package domain

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrPlatformNotFound = errors.New("platform not found")
	ErrNoMatch          = errors.New("no games found")
	ErrBothLocations    = errors.New("game folder exists in both locations")
	ErrNeitherLocation  = errors.New("game folder does not exist in either location")
	ErrTargetMissing    = errors.New("target does not exist")
	ErrNotDirectory     = errors.New("not a directory")
	ErrCancelled        = errors.New("cancelled")
)
