package group

import "errors"

var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrEmptyName          = errors.New("name must not be empty")
	ErrSameName           = errors.New("a couple needs two different people")
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrAlreadyInCouple    = errors.New("participant already in a couple")
	ErrNotDrawn           = errors.New("group has not been drawn yet")
)
