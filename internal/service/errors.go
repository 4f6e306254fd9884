package service

import "errors"

var (
	ErrEmptyTurn        = errors.New("turn text is empty")
	ErrBusy             = errors.New("a reply is already in flight for this session")
	ErrSessionDisposed  = errors.New("session has been disposed")
	ErrUnknownModule    = errors.New("unknown module")
	ErrItemIndex        = errors.New("plan item index out of range")
	ErrUnsupportedMedia = errors.New("only image and video uploads are supported")
	ErrModuleNotReady   = errors.New("module is missing required context")
)
