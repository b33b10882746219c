// internal/form/rules.go
//
// staffdesk – Forms subsystem: syntactic rules for email and password.
//
// All checks are pure and total over string input.  Patterns are compiled
// once at package init.
//
//------------------------------------------------------------------------------

package form

import (
	"fmt"
	"regexp"
	"unicode/utf16"
)

// MinPasswordLength is the shortest acceptable password.
const MinPasswordLength = 8

// SpecialChars is the set of characters that satisfies the special rule.
const SpecialChars = "@$!%*?&"

// Password messages.
const (
	MsgPasswordLength    = "Password must be at least 8 characters long."
	MsgPasswordUpper     = "Password must include at least one uppercase letter."
	MsgPasswordLower     = "Password must include at least one lowercase letter."
	MsgPasswordDigit     = "Password must include at least one number."
	MsgPasswordSpecial   = "Password must include at least one special character (@$!%*?&)."
	MsgPasswordComposite = "Password must be at least 8 characters long, include an uppercase letter, a lowercase letter, a number, and a special character."
	MsgEmailInvalid      = "Please enter a valid email."
)

var (
	// Whitespace here is the browser's: ASCII space controls, \v, every Unicode
	// separator, and the BOM.
	emailRE   = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
	upperRE   = regexp.MustCompile(`[A-Z]`)
	lowerRE   = regexp.MustCompile(`[a-z]`)
	digitRE   = regexp.MustCompile(`[0-9]`)
	specialRE = regexp.MustCompile(`[@$!%*?&]`)

	// compositeRE is the whole-string class; the four "contains" rules are
	// checked separately since RE2 has no lookahead.
	compositeRE = regexp.MustCompile(`^[A-Za-z0-9@$!%*?&]{8,}$`)
)

// ValidEmail reports whether s has the shape local@domain.tld, with no
// whitespace or extra "@" in any part.
func ValidEmail(s string) bool { return emailRE.MatchString(s) }

// -----------------------------------------------------------------------------
// Password policy
// -----------------------------------------------------------------------------

// PasswordPolicy selects how password violations are reported.
type PasswordPolicy int

const (
	// PolicyFirstFailing reports the first broken rule in a fixed order.
	PolicyFirstFailing PasswordPolicy = iota
	// PolicyComposite reports one generic message for any violation and
	// also rejects characters outside the allowed class.
	PolicyComposite
)

func (p PasswordPolicy) String() string {
	switch p {
	case PolicyFirstFailing:
		return "first_failing"
	case PolicyComposite:
		return "composite"
	default:
		return fmt.Sprintf("PasswordPolicy(%d)", int(p))
	}
}

// ParsePolicy maps a configuration string onto a PasswordPolicy.
func ParsePolicy(s string) (PasswordPolicy, error) {
	switch s {
	case "", "first_failing":
		return PolicyFirstFailing, nil
	case "composite":
		return PolicyComposite, nil
	default:
		return 0, fmt.Errorf("form: unknown password policy %q", s)
	}
}

type passwordRule struct {
	ok  func(string) bool
	msg string
}

// passwordRules are evaluated in order; the order is part of the contract.
var passwordRules = []passwordRule{
	{func(s string) bool { return passwordLen(s) >= MinPasswordLength }, MsgPasswordLength},
	{upperRE.MatchString, MsgPasswordUpper},
	{lowerRE.MatchString, MsgPasswordLower},
	{digitRE.MatchString, MsgPasswordDigit},
	{specialRE.MatchString, MsgPasswordSpecial},
}

// passwordLen counts UTF-16 code units, the unit the portal's browser forms
// measure in.  A character outside the BMP counts twice.
func passwordLen(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++ // invalid UTF-8 decodes to U+FFFD
		}
	}
	return n
}

// CheckPassword returns "" when s satisfies policy, otherwise the message to
// show.
func CheckPassword(policy PasswordPolicy, s string) string {
	if policy == PolicyComposite {
		if ValidPassword(s) {
			return ""
		}
		return MsgPasswordComposite
	}
	for _, r := range passwordRules {
		if !r.ok(s) {
			return r.msg
		}
	}
	return ""
}

// ValidPassword is the boolean composite check: every rule holds and the
// whole string stays inside the allowed character class.
func ValidPassword(s string) bool {
	if !compositeRE.MatchString(s) {
		return false
	}
	for _, r := range passwordRules[1:] {
		if !r.ok(s) {
			return false
		}
	}
	return true
}
