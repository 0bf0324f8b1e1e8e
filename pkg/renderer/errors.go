package renderer

import "errors"

var (
	ErrNotCommitted          = errors.New("renderer: configuration not committed")
	ErrCameraNotDefined      = errors.New("renderer: no camera defined")
	ErrBatchCameraNotDefined = errors.New("renderer: camera does not support batch ray generation")
	ErrSceneNotDefined       = errors.New("renderer: no scene defined")
	ErrInvalidSPP            = errors.New("renderer: samples per pixel must be at least 1")
	ErrInvalidLaneWidth      = errors.New("renderer: lane width must divide the job size")
	ErrTypeMismatch          = errors.New("renderer: type mismatch, scalar sample hook called on a stream renderer")
	ErrInterrupted           = errors.New("renderer: rendering interrupted")
)
