package network

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	cfgValidator = validator.New()
	// ErrTranslations is the translator for the validation errors, it
	// renders them in plain English.
	ErrTranslations ut.Translator
)

func init() {
	english := en.New()
	uni := ut.New(english, english)
	var ok bool
	ErrTranslations, ok = uni.GetTranslator("en")
	if !ok {
		panic("internal error: failed to init the translator")
	}
	if err := translations.RegisterDefaultTranslations(cfgValidator, ErrTranslations); err != nil {
		panic(err)
	}
}

// Limits contains the rate limiting and retry parameters for the backend
// API calls.
type Limits struct {
	// Workers is the number of concurrent API request workers.
	Workers int `json:"workers,omitempty" toml:"workers" validate:"gte=1,lte=16"`
	// Retries is the number of attempts on transient errors.
	Retries int `json:"retries,omitempty" toml:"retries" validate:"gte=1,lte=10"`
	// Ask is the budget for the conversation endpoint.
	Ask TierLimit `json:"ask,omitempty" toml:"ask"`
	// API is the budget for the session and metadata endpoints.
	API TierLimit `json:"api,omitempty" toml:"api"`
}

// TierLimit is the rate adjustment for one endpoint class.
type TierLimit struct {
	// Burst is the allowed burst size.
	Burst uint `json:"burst,omitempty" toml:"burst" validate:"gte=1"`
	// Boost is the additional events per minute on top of the base tier
	// rate.
	Boost int `json:"boost,omitempty" toml:"boost"`
}

// DefLimits are the default limits.
var DefLimits = Limits{
	Workers: 4,
	Retries: 3,
	Ask:     TierLimit{Burst: 1},
	API:     TierLimit{Burst: 3, Boost: 60},
}

// Validate checks if the limits are within the allowed boundaries.
func (o *Limits) Validate() error {
	return cfgValidator.Struct(o)
}

// Apply updates the limits with the non-zero values of other, and
// validates the result.
func (o *Limits) Apply(other Limits) error {
	apply(&o.Workers, other.Workers)
	apply(&o.Retries, other.Retries)
	apply(&o.Ask.Burst, other.Ask.Burst)
	apply(&o.Ask.Boost, other.Ask.Boost)
	apply(&o.API.Burst, other.API.Burst)
	apply(&o.API.Boost, other.API.Boost)
	return o.Validate()
}

func apply[T comparable](this *T, other T) {
	var zero T
	if other != zero && *this != other {
		*this = other
	}
}
