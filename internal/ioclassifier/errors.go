package ioclassifier

import (
	"fmt"

	"github.com/leafdex/leafdex/pkg/leafdex"
)

// All classifier failures wrap leafdex.ErrAnalysisFailed so callers
// can distinguish "the analysis broke" from "the analysis said no".

func RequestError(path string, err error) error {
	return fmt.Errorf("%w: classifier call %s: %v",
		leafdex.ErrAnalysisFailed, path, err)
}

func DecodeError(path string, err error) error {
	return fmt.Errorf("%w: classifier response %s does not parse: %v",
		leafdex.ErrAnalysisFailed, path, err)
}

func InvalidJudgmentError(err error) error {
	return fmt.Errorf("%w: judgment rejected: %v",
		leafdex.ErrAnalysisFailed, err)
}
