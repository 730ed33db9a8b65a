package tui

type state int

const (
	tilesState state = iota
	inputState
	qualitiesState
	loadingState
	errorState
)
