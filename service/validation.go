package service

import (
	"errors"
	"math"
	"regexp"

	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/models"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

const (
	minStrokeWidth = 1
	maxStrokeWidth = 20
	minEraseWidth  = 1
	maxEraseWidth  = 100
)

// ValidateStart checks the payload of a draw-start or erase-start event.
// Violations surface as errors so call sites can log them, but the
// protocol absorbs them as silent no-ops; the sender gets no denial.
func ValidateStart(kind models.OperationKind, p models.Point, color string, width float64) error {
	if kind != models.KindStroke && kind != models.KindErase {
		return errors.New("invalid operation kind")
	}
	if !validPoint(p) {
		return errors.New("invalid point")
	}
	if kind == models.KindStroke {
		if !hexColorRegex.MatchString(color) {
			return errors.New("invalid color")
		}
		if width < minStrokeWidth || width > maxStrokeWidth {
			return errors.New("invalid stroke width")
		}
		return nil
	}
	if width < minEraseWidth || width > maxEraseWidth {
		return errors.New("invalid erase width")
	}
	return nil
}

func validPoint(p models.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
