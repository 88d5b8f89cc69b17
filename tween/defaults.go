package tween

import (
	"errors"
	"log"
	"os"

	"github.com/matt-g-everett/ledtween/easing"
	"github.com/matt-g-everett/ledtween/interpolation"
)

// EasingFunc maps a linear progress in [0, 1] to an eased progress.
type EasingFunc = func(amount float64) float64

// InterpolationFunc evaluates a multi-point curve at k in [0, 1].
type InterpolationFunc = func(v []float64, k float64) float64

// Forever can be passed to Tween.Repeat to loop endlessly.
const Forever = -1

var (
	// ErrCyclicValue is returned when a value tree references itself.
	ErrCyclicValue = errors.New("tween: cyclic value")

	// ErrUnsupportedValue is returned when a value can't be used as a start value.
	ErrUnsupportedValue = errors.New("tween: unsupported value")
)

// DefaultValues are copied into every Tween and Spring when it is created.
type DefaultValues struct {
	SafetyCheck   func(target any) bool
	Easing        EasingFunc
	YoyoEasing    EasingFunc
	Interpolation InterpolationFunc
}

// Defaults used during construction. Changing them doesn't affect existing instances.
var Defaults = DefaultValues{
	SafetyCheck:   func(any) bool { return true },
	Easing:        easing.Linear,
	YoyoEasing:    nil,
	Interpolation: interpolation.Linear,
}

var logger = log.New(os.Stderr, "tween: ", log.LstdFlags)

// SetLogger replaces the logger used for warnings. A nil logger silences them.
func SetLogger(l *log.Logger) {
	logger = l
}

func warnf(format string, v ...any) {
	if logger != nil {
		logger.Printf(format, v...)
	}
}
