package display

import (
	"strconv"
	"time"

	"github.com/motivation-app/motivation/pkg/age"
	"github.com/motivation-app/motivation/pkg/settings"
)

// DefaultPrompt is shown while no birthday is set.
const DefaultPrompt = "Run 'motivation birthday set' to set your birthday."

// Formatter renders fractional ages.
type Formatter struct {
	calc   *age.Calculator
	prompt string
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithPrompt replaces the text shown while no birthday is set.
func WithPrompt(prompt string) Option {
	return func(f *Formatter) {
		f.prompt = prompt
	}
}

// New creates a Formatter. A nil calculator means age.New(nil).
func New(calc *age.Calculator, opts ...Option) *Formatter {
	if calc == nil {
		calc = age.New(nil)
	}
	f := &Formatter{calc: calc, prompt: DefaultPrompt}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Prompt returns the text shown while no birthday is set.
func (f *Formatter) Prompt() string {
	return f.prompt
}

// Format returns the prompt when b is unset. Otherwise it returns the age at
// now with exactly p.DecimalPlaces() digits after the point, rounded half to
// even on the exact binary value. Ages before birth keep their minus sign.
func (f *Formatter) Format(b settings.Birthday, now time.Time, p settings.PrecisionLevel) string {
	birth, ok := b.Get()
	if !ok {
		return f.prompt
	}
	years := f.calc.FractionalAge(birth, now)
	return strconv.FormatFloat(years, 'f', p.DecimalPlaces(), 64)
}
