package solver

import "errors"

var (
	// ErrEmptyAnswerSet means no answer is consistent with the feedback
	// history, or an engine was built without answers.
	ErrEmptyAnswerSet = errors.New("solver: no potential answers remain")
	// ErrUnknownStrategy is returned for unrecognized strategy names.
	ErrUnknownStrategy = errors.New("solver: unknown strategy")
	// ErrInvalidWeight is returned when the combined strategy's k is not above 1.
	ErrInvalidWeight = errors.New("solver: strategy weight must be greater than 1")
	// ErrUnknownGuess is returned when a word is neither a legal guess nor an answer.
	ErrUnknownGuess = errors.New("solver: word is not a legal guess")
	// ErrNoPendingGuess is returned when feedback arrives before a guess was taken.
	ErrNoPendingGuess = errors.New("solver: no guess awaiting feedback")
	// ErrSessionFinished is returned once a session is solved or exhausted.
	ErrSessionFinished = errors.New("solver: session finished")
	// ErrVectorMismatch is returned when per-guess vectors differ in length.
	ErrVectorMismatch = errors.New("solver: vector lengths differ")
)
