package simulation

import "errors"

var (
	ErrSessionClosed          = errors.New("session closed")
	ErrDataChannelUnavailable = errors.New("bridge data channel not open")
	ErrAlreadyJoined          = errors.New("session already joined")
	ErrRoomClosed             = errors.New("room closed")
	ErrRedirected             = errors.New("redirected to visitor node")
	ErrParticipantNotFound    = errors.New("participant not found")
)
