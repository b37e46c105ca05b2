package scramble

import "errors"

var (
	// ErrEmptyWord is returned for a word with no letters left after cleaning.
	ErrEmptyWord = errors.New("word has no letters")
	// ErrNoPlayableWords is returned when a deck holds no usable word.
	ErrNoPlayableWords = errors.New("no playable words")
	// ErrBusy is returned for any input while an answer is being checked or
	// its feedback is on screen.
	ErrBusy = errors.New("round is not accepting input")
	// ErrTileNotInPool is returned when the tile is not sitting in the pool.
	ErrTileNotInPool = errors.New("tile is not in the pool")
	// ErrNoEmptySlot is returned when every answer slot is taken.
	ErrNoEmptySlot = errors.New("no empty answer slot")
	// ErrSlotOutOfRange is returned for a slot index outside the answer.
	ErrSlotOutOfRange = errors.New("slot out of range")
	// ErrSlotEmpty is returned when returning a tile from an empty slot.
	ErrSlotEmpty = errors.New("slot is empty")
	// ErrHintLocked is returned when trying to move a revealed hint letter.
	ErrHintLocked = errors.New("slot holds a hint letter")
	// ErrSessionFinished is returned for input after the last word resolved.
	ErrSessionFinished = errors.New("session finished")
	// ErrSessionNotFinished is returned when completing a session early.
	ErrSessionNotFinished = errors.New("session not finished")
	// ErrAlreadyCompleted is returned on the second completion of a session.
	ErrAlreadyCompleted = errors.New("session already completed")
)
