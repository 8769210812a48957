package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	upperRe  = regexp.MustCompile(`[A-Z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
	symbolRe = regexp.MustCompile(`[^A-Za-z0-9]`)
)

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {},
	"123456789": {}, "1234567890": {}, "qwerty123": {}, "qwertyuiop": {},
	"iloveyou": {}, "sunshine": {}, "princess": {}, "football": {},
	"baseball": {}, "welcome1": {}, "admin123": {}, "letmein1": {},
	"abc12345": {}, "11111111": {}, "00000000": {}, "passw0rd": {},
}

// PasswordPolicy is the configurable strength rule set applied at
// registration and password change.
type PasswordPolicy struct {
	MinLength     int
	MaxLength     int
	RequireUpper  bool
	RequireDigit  bool
	RequireSymbol bool
}

func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 8, MaxLength: 128}
}

// Check returns every rule the password violates. userAttrs are values the
// password must not resemble, such as the username or the email local part.
func (p PasswordPolicy) Check(password string, userAttrs ...string) []string {
	rules := []validation.Rule{
		validation.Required.Error("This field is required"),
		validation.Length(p.MinLength, p.MaxLength).
			Error(fmt.Sprintf("Must be between %d and %d characters", p.MinLength, p.MaxLength)),
		validation.By(notNumeric),
		validation.By(notCommon),
		validation.By(notSimilarTo(userAttrs)),
	}
	if p.RequireUpper {
		rules = append(rules, validation.Match(upperRe).Error("Must contain an uppercase letter"))
	}
	if p.RequireDigit {
		rules = append(rules, validation.Match(digitRe).Error("Must contain a digit"))
	}
	if p.RequireSymbol {
		rules = append(rules, validation.Match(symbolRe).Error("Must contain a symbol"))
	}

	var problems []string
	for _, rule := range rules {
		if err := validation.Validate(password, rule); err != nil {
			problems = append(problems, err.Error())
		}
		if password == "" {
			break
		}
	}
	return problems
}

func notNumeric(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return nil
		}
	}
	return errors.New("Cannot be entirely numeric")
}

func notCommon(value interface{}) error {
	s, _ := value.(string)
	if _, ok := commonPasswords[strings.ToLower(s)]; ok {
		return errors.New("This password is too common")
	}
	return nil
}

func notSimilarTo(attrs []string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		lower := strings.ToLower(s)
		for _, attr := range attrs {
			attr = strings.ToLower(strings.TrimSpace(attr))
			if local, _, ok := strings.Cut(attr, "@"); ok {
				attr = local
			}
			if len(attr) >= 3 && strings.Contains(lower, attr) {
				return errors.New("The password is too similar to your account details")
			}
		}
		return nil
	}
}
