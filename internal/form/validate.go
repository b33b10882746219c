// internal/form/validate.go
//
// staffdesk – Forms subsystem: client-side validation.
//
// Context
//   Before any request leaves the process the controller runs Validate over
//   the current values.  The result maps field name → message; an empty
//   result is the only thing that opens the validation gate.
//
// Workflow
//   •  Required fields whose trimmed value is empty get “<Label> is required.”
//      and no further checks.
//   •  Non-empty values are checked by type: email shape, password policy,
//      and select option membership.
//   •  On failure callers wrap Errors in validationError and treat it as a
//      user error (IsValidationError), never as a popup.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

// FormKey is the reserved key for a form-level message.  Validation never
// produces it.
const FormKey = "form"

// Values maps field name → raw input.
type Values map[string]string

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

// Errors maps field name → user-facing message.  A field absent from the map
// is valid.
type Errors map[string]string

// Fields returns the failing field names, sorted.
func (e Errors) Fields() []string {
	keys := lo.Keys(e)
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, s := range e {
		out[k] = s
	}
	return out
}

// -----------------------------------------------------------------------------
// Error type
// -----------------------------------------------------------------------------

// validationError wraps Errors and satisfies the error interface so callers
// can tell user input errors from system failures.
type validationError struct{ Fields Errors }

func (ve validationError) Error() string {
	return "form validation failed: " + strings.Join(ve.Fields.Fields(), ", ")
}

// IsValidationError reports whether err came from a failed Validate.
func IsValidationError(err error) bool {
	var ve validationError
	return errors.As(err, &ve)
}

// ValidationErrors returns the field errors carried by err, or nil.
func ValidationErrors(err error) Errors {
	var ve validationError
	if errors.As(err, &ve) {
		return ve.Fields.Clone()
	}
	return nil
}

// -----------------------------------------------------------------------------
// Public API
// -----------------------------------------------------------------------------

// ValidateRequired returns “<Field> is required.” for each name whose trimmed
// value is empty.  The field label is the name with its first letter
// upper-cased.
func ValidateRequired(values Values, names []string) Errors {
	errs := Errors{}
	for _, n := range names {
		if strings.TrimSpace(values[n]) == "" {
			errs[n] = requiredMsg(labelFor(n))
		}
	}
	return errs
}

// Validate checks values against fd.  Values are taken as given; trimming
// is the caller's job (see Controller).  The result is empty when the form
// may be submitted.
func Validate(fd *FormDef, values Values, policy PasswordPolicy) Errors {
	errs := Errors{}
	for _, f := range fd.Fields {
		raw := values[f.Name]
		if strings.TrimSpace(raw) == "" {
			if f.Required {
				errs[f.Name] = requiredMsg(f.Label)
			}
			continue
		}
		if msg := checkField(&f, raw, policy); msg != "" {
			errs[f.Name] = msg
		}
	}
	return errs
}

// -----------------------------------------------------------------------------
// Field-level helpers
// -----------------------------------------------------------------------------

func checkField(f *FieldDef, raw string, policy PasswordPolicy) string {
	switch f.Type {
	case "email":
		if !ValidEmail(raw) {
			return invalidMsg(f, MsgEmailInvalid)
		}
	case "password":
		return CheckPassword(policy, raw)
	case "select":
		if !lo.Contains(f.Options, raw) {
			return invalidMsg(f, "Please select a valid "+strings.ToLower(f.Label)+".")
		}
	}
	return ""
}

func requiredMsg(label string) string { return label + " is required." }

func invalidMsg(f *FieldDef, fallback string) string {
	if f.ErrorMsg != "" {
		return f.ErrorMsg
	}
	return fallback
}

// labelFor upper-cases the first letter of a field name.
func labelFor(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
