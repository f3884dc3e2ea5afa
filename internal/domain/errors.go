package domain

import "errors"

var (
	// ErrEmptyInput is returned when quiz text is empty or whitespace-only.
	ErrEmptyInput = errors.New("quiz text is empty")
	// ErrNoBlocksFound is returned when no delimited question blocks exist in the text.
	ErrNoBlocksFound = errors.New("no question blocks found")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrAttemptNotFound is returned when an attempt ID is unknown or expired.
	ErrAttemptNotFound = errors.New("quiz attempt not found")
	// ErrQuizFinished is returned when answering past the last question.
	ErrQuizFinished = errors.New("quiz attempt already finished")
	// ErrInvalidAnswer is returned for submitted answers outside A-D.
	ErrInvalidAnswer = errors.New("answer must be a letter A-D")
	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrAPIKeyNotFound is returned when a user has no stored API key.
	ErrAPIKeyNotFound = errors.New("no API key configured")
)
