package jenkins

import (
	"strings"

	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// BuildStatus is the result of a finished build. Values the server adds in
// the future are kept as-is.
type BuildStatus string

const (
	StatusSuccess  BuildStatus = "SUCCESS"
	StatusUnstable BuildStatus = "UNSTABLE"
	StatusFailure  BuildStatus = "FAILURE"
	StatusNotBuilt BuildStatus = "NOT_BUILT"
	StatusAborted  BuildStatus = "ABORTED"
)

// Known reports whether s is one of the documented results.
func (s BuildStatus) Known() bool {
	switch s {
	case StatusSuccess, StatusUnstable, StatusFailure, StatusNotBuilt, StatusAborted:
		return true
	}
	return false
}

func buildStatus(dst *BuildStatus) tagged.Decoder {
	return tagged.String((*string)(dst))
}

// BallColor is the status icon of a job. An "_anime" suffix means a build
// is running.
type BallColor string

const (
	ColorBlue          BallColor = "blue"
	ColorBlueAnime     BallColor = "blue_anime"
	ColorYellow        BallColor = "yellow"
	ColorYellowAnime   BallColor = "yellow_anime"
	ColorRed           BallColor = "red"
	ColorRedAnime      BallColor = "red_anime"
	ColorGrey          BallColor = "grey"
	ColorGreyAnime     BallColor = "grey_anime"
	ColorDisabled      BallColor = "disabled"
	ColorDisabledAnime BallColor = "disabled_anime"
	ColorAborted       BallColor = "aborted"
	ColorAbortedAnime  BallColor = "aborted_anime"
	ColorNotBuilt      BallColor = "notbuilt"
	ColorNotBuiltAnime BallColor = "notbuilt_anime"
)

// Building reports whether the color is an animated one.
func (c BallColor) Building() bool {
	return strings.HasSuffix(string(c), "_anime")
}

// Status maps the color to the result of the last completed build. ok is
// false for colors that carry no result (grey, disabled, unknown).
func (c BallColor) Status() (s BuildStatus, ok bool) {
	switch BallColor(strings.TrimSuffix(string(c), "_anime")) {
	case ColorBlue:
		return StatusSuccess, true
	case ColorYellow:
		return StatusUnstable, true
	case ColorRed:
		return StatusFailure, true
	case ColorAborted:
		return StatusAborted, true
	case ColorNotBuilt:
		return StatusNotBuilt, true
	}
	return "", false
}

func ballColor(dst *BallColor) tagged.Decoder {
	return tagged.String((*string)(dst))
}
