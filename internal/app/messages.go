package app

import (
	"github.com/llehouerou/saavn/internal/catalog"
	"github.com/llehouerou/saavn/internal/download"
	"github.com/llehouerou/saavn/internal/player"
)

// SearchResultMsg carries the outcome of a search request. Seq identifies
// the request; results of superseded requests are dropped.
type SearchResultMsg struct {
	Seq    int
	Query  string
	Tracks []catalog.Track
	Err    error
}

// DownloadResultMsg carries the outcome of a download.
type DownloadResultMsg struct {
	Track  catalog.Track
	Result download.Result
	Err    error
}

// EngineStateMsg wraps an engine state change.
type EngineStateMsg player.StateChange

// EnginePositionMsg wraps a progress sample.
type EnginePositionMsg player.PositionChange

// EngineErrorMsg wraps a swallowed engine failure.
type EngineErrorMsg player.ErrorEvent

// EngineClosedMsg is sent once the engine subscription is closed.
type EngineClosedMsg struct{}

// StderrMsg is a line written to stderr by the audio backend.
type StderrMsg string
