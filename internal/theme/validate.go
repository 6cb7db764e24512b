package theme

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	rainbowerrors "github.com/alexisbeaulieu97/rainbow/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	hexColorPattern  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColorPattern = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\([^()]*\)$`)
	namedColor       = regexp.MustCompile(`^[a-zA-Z]+$`)

	fontWeights = map[string]struct{}{
		"normal": {}, "bold": {}, "lighter": {}, "bolder": {},
		"thin": {}, "extralight": {}, "light": {}, "medium": {},
		"semibold": {}, "extrabold": {}, "black": {},
		"100": {}, "200": {}, "300": {}, "400": {}, "500": {},
		"600": {}, "700": {}, "800": {}, "900": {},
	}
)

// RegisterValidations installs the css_color and font_weight tags on v.
func RegisterValidations(v *validator.Validate) {
	_ = v.RegisterValidation("css_color", func(fl validator.FieldLevel) bool {
		return IsColor(fl.Field().String())
	})

	_ = v.RegisterValidation("font_weight", func(fl validator.FieldLevel) bool {
		return IsFontWeight(fl.Field().String())
	})
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		RegisterValidations(v)
		validateInst = v
	})
	return validateInst
}

// IsColor reports whether s is a hex, rgb()/hsl() or named CSS color.
func IsColor(s string) bool {
	return hexColorPattern.MatchString(s) || funcColorPattern.MatchString(s) || namedColor.MatchString(s)
}

// IsFontWeight reports whether s is a CSS font weight keyword or hundred value.
func IsFontWeight(s string) bool {
	_, ok := fontWeights[s]
	return ok
}

// Validate checks every style of the theme. The field in a returned
// ValidationError names the offending entry, e.g. "prefix.hover.color".
// Malformed wildcard keys are not rejected; they simply never match.
func Validate(t Theme) error {
	v := validatorInstance()

	check := func(field string, cfg StyleConfig) error {
		if err := v.Struct(cfg); err != nil {
			if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
				fe := fieldErrs[0]
				name := field + "." + lowerFirst(fe.Field())
				return rainbowerrors.NewValidationError(name, fmt.Sprintf("invalid value %q (%s)", fe.Value(), fe.Tag()), err)
			}
			return rainbowerrors.NewValidationError(field, err.Error(), err)
		}
		return nil
	}

	for _, e := range t.Prefix.Entries() {
		if err := check("prefix."+e.Key, e.Config); err != nil {
			return err
		}
	}
	for _, e := range t.Base.Entries() {
		if err := check("base."+e.Key, e.Config); err != nil {
			return err
		}
	}
	if t.Arbitrary != nil {
		if err := check(KeyArbitrary, *t.Arbitrary); err != nil {
			return err
		}
	}
	if t.Important != nil {
		if err := check(KeyImportant, *t.Important); err != nil {
			return err
		}
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
