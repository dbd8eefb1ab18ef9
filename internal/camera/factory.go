package camera

import (
	"fmt"
)

const (
	TypePush      = "push"
	TypeDirectory = "directory"
	TypePattern   = "pattern"
)

// NewCameraSource creates the source named by sourceType. directory is only used by the
// directory source.
func NewCameraSource(sourceType, directory string, decode DecodeFunc) (CameraSource, error) {
	switch sourceType {
	case TypePush, "":
		return NewPushSource(), nil
	case TypeDirectory:
		if directory == "" {
			return nil, fmt.Errorf("directory camera requires a directory")
		}
		if decode == nil {
			return nil, fmt.Errorf("directory camera requires a decoder")
		}
		return NewDirectorySource(directory, decode), nil
	case TypePattern:
		return NewPatternSource(), nil
	default:
		return nil, fmt.Errorf("unsupported camera source: %s", sourceType)
	}
}
