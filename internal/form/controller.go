// internal/form/controller.go
//
// staffdesk – Forms subsystem: submission controller.
//
// Context
//   A Controller owns one form instance: its values, its field errors, and
//   the form-level outcome.  Submit gates the request behind validation and
//   sends it exactly once through an Action supplied by the component that
//   owns the form (login, signup, add-employee).
//
// Workflow
//   •  Set stores a value and clears that field's error only.
//   •  Submit: gate → trim → validate → clear errors → Action.Send →
//      (dismissed? discard) → failure message or Action.Succeeded.
//   •  Close dismisses the controller.  The in-flight request is cancelled
//      and its outcome is never applied.
//
// Concurrency
//   The submit gate is a weight-1 semaphore taken with TryAcquire, so a
//   second Submit while one is outstanding returns ErrBusy without touching
//   the network.  State is guarded by mu; Action calls run outside it.
//
//------------------------------------------------------------------------------

package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/yanizio/staffdesk/internal/metrics"
)

var (
	// ErrBusy is returned when a submission is already outstanding.
	ErrBusy = errors.New("form: submission in progress")
	// ErrDismissed is returned once the controller has been closed.
	ErrDismissed = errors.New("form: dismissed")
	// ErrUnknownField is returned by Set for names the form does not define.
	ErrUnknownField = errors.New("form: unknown field")
)

// Result is the outcome of one request.  On success Payload carries whatever
// the Action decoded (a session, an employee record, a message).  On failure
// Message is the single line shown to the user.
type Result struct {
	Success bool
	Message string
	Payload any
}

// Action performs the network half of a submission.
//
// Send issues exactly one request carrying values.  It returns a Result
// whose Success flag mirrors the backend's verdict, or an error when the
// request failed outright.  Succeeded runs the success side effects; it is
// only called while the controller is still open.
type Action interface {
	Send(ctx context.Context, values Values) (Result, error)
	Succeeded(ctx context.Context, r Result) error
}

// userMessager is implemented by errors that carry text safe to show, such
// as *api.Error.
type userMessager interface{ UserMessage() string }

// Controller drives one form instance.  Safe for concurrent use.
type Controller struct {
	def    *FormDef
	action Action
	policy PasswordPolicy
	log    *zap.SugaredLogger

	gate       *semaphore.Weighted
	submitting atomic.Bool

	scope  context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	values  Values
	errs    Errors
	formErr string
	popup   bool
	notice  string
}

// Option customises a Controller.
type Option func(*Controller)

// WithPolicy selects the password policy.  Default PolicyFirstFailing.
func WithPolicy(p PasswordPolicy) Option { return func(c *Controller) { c.policy = p } }

// WithLogger sets the controller's logger.
func WithLogger(l *zap.SugaredLogger) Option { return func(c *Controller) { c.log = l } }

// NewController returns an idle controller with every field empty.
func NewController(def *FormDef, action Action, opts ...Option) *Controller {
	scope, cancel := context.WithCancel(context.Background())
	c := &Controller{
		def:    def,
		action: action,
		log:    zap.S(),
		gate:   semaphore.NewWeighted(1),
		scope:  scope,
		cancel: cancel,
		values: make(Values, len(def.Fields)),
		errs:   Errors{},
	}
	for _, f := range def.Fields {
		c.values[f.Name] = ""
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("form", def.ID)
	return c
}

/*──────────────────────────── state access ────────────────────────────────*/

// Def returns the form definition.
func (c *Controller) Def() *FormDef { return c.def }

// Set stores value for field and clears that field's error.  Other fields'
// errors and the form-level message are left alone.
func (c *Controller) Set(field, value string) error {
	if _, ok := c.def.Field(field); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	c.mu.Lock()
	c.values[field] = value
	delete(c.errs, field)
	c.mu.Unlock()
	return nil
}

// Value returns the current value of field.
func (c *Controller) Value(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[field]
}

// Values returns a copy of every value.
func (c *Controller) Values() Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values.Clone()
}

// Errors returns a copy of the field errors from the last submit.
func (c *Controller) Errors() Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs.Clone()
}

// FormError returns the form-level failure message, if any.
func (c *Controller) FormError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formErr
}

// Popup reports whether a failure popup should be displayed.
func (c *Controller) Popup() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.popup
}

// DismissPopup hides the failure popup.  The message is kept.
func (c *Controller) DismissPopup() {
	c.mu.Lock()
	c.popup = false
	c.mu.Unlock()
}

// Notice returns the success message from the last submit, if any.
func (c *Controller) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// Submitting reports whether a request is outstanding.  UIs disable the
// submit control while it is true.
func (c *Controller) Submitting() bool { return c.submitting.Load() }

// Reset empties every value and clears all errors and messages.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	for k := range c.values {
		c.values[k] = ""
	}
	c.errs = Errors{}
	c.formErr = ""
	c.popup = false
}

// Close dismisses the controller.  An outstanding request is cancelled and
// its outcome discarded; later Submits return ErrDismissed.
func (c *Controller) Close() { c.cancel() }

/*──────────────────────────── submission ──────────────────────────────────*/

// Submit validates the current values and, only if they are valid, sends
// them once.
//
// It returns a validation error (IsValidationError) when the gate stays
// shut, ErrBusy or ErrDismissed when the attempt did not run, and otherwise
// the Result together with any error from the success hook.  A backend
// failure is a Result with Success == false, not an error.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	if c.scope.Err() != nil {
		c.count("dismissed")
		return Result{}, ErrDismissed
	}
	if !c.gate.TryAcquire(1) {
		c.count("busy")
		return Result{}, ErrBusy
	}
	defer c.gate.Release(1)
	c.submitting.Store(true)
	defer c.submitting.Store(false)

	// Snapshot and trim.  Trimmed fields are sent trimmed too.
	c.mu.Lock()
	vals := c.values.Clone()
	c.formErr = ""
	c.popup = false
	c.notice = ""
	c.mu.Unlock()
	for _, f := range c.def.Fields {
		if f.Trim {
			vals[f.Name] = strings.TrimSpace(vals[f.Name])
		}
	}

	errs := Validate(c.def, vals, c.policy)
	if len(errs) > 0 {
		c.mu.Lock()
		c.errs = errs
		c.mu.Unlock()
		for _, f := range errs.Fields() {
			metrics.ValidationErrorsTotal.WithLabelValues(c.def.ID, f).Inc()
		}
		c.count("invalid")
		c.log.Debugw("validation failed", "fields", errs.Fields())
		return Result{}, validationError{Fields: errs}
	}

	c.mu.Lock()
	c.errs = Errors{}
	c.mu.Unlock()

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.scope, cancel)
	defer stop()

	res, err := c.action.Send(reqCtx, vals)

	if c.scope.Err() != nil {
		c.count("dismissed")
		c.log.Infow("outcome discarded after dismissal", "err", err)
		return Result{}, ErrDismissed
	}

	if err != nil || !res.Success {
		msg := c.failureMessage(res, err)
		c.mu.Lock()
		c.formErr = msg
		c.popup = c.def.Popup
		c.mu.Unlock()
		c.count("failure")
		if err != nil {
			c.log.Warnw("submission failed", "err", err)
		} else {
			c.log.Infow("submission rejected", "message", msg)
		}
		return Result{Success: false, Message: msg, Payload: res.Payload}, nil
	}

	if err := c.action.Succeeded(ctx, res); err != nil {
		c.mu.Lock()
		c.formErr = c.def.Messages.Error
		c.popup = c.def.Popup
		c.mu.Unlock()
		c.count("failure")
		c.log.Errorw("success hook failed", "err", err)
		return Result{Success: false, Message: c.def.Messages.Error}, fmt.Errorf("%s: %w", c.def.ID, err)
	}

	c.mu.Lock()
	if c.def.ClearOnSuccess {
		c.resetLocked()
	}
	c.notice = res.Message
	c.mu.Unlock()
	c.count("success")
	c.log.Infow("submission succeeded")
	return res, nil
}

// failureMessage reduces a failed attempt to one line: the backend's own
// message when it sent one, else the definition's fallback.
func (c *Controller) failureMessage(res Result, err error) string {
	if err == nil {
		if res.Message != "" {
			return res.Message
		}
		return c.def.Messages.Failure
	}
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	return c.def.Messages.Error
}

func (c *Controller) count(outcome string) {
	metrics.SubmissionsTotal.WithLabelValues(c.def.ID, outcome).Inc()
}
