// Package flow drives a visitor registration from form entry to a dispatched request.
package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"visitor-registration/pkg/models"
	"visitor-registration/pkg/validation"
)

// State of a Form
type State string

const (
	StateIdle           State = "idle"
	StateInvalid        State = "invalid"
	StateBlockedByTerms State = "blocked-by-terms"
	StateSubmitting     State = "submitting"
	StateSuccess        State = "success"
	StateError          State = "error"
)

var (
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrNoticeUnread       = errors.New("the visitor notice has not been read to the end")
	ErrUnknownField       = errors.New("unknown form field")
	ErrNoticeClosed       = errors.New("the visitor notice is not open")
)

// Form holds the values being entered and the state of their submission.
// It is safe for concurrent use; only one submission may be in flight.
type Form struct {
	mu            sync.Mutex
	dispatcher    Dispatcher
	lang          string
	state         State
	sub           models.VisitorSubmission
	errors        validation.Errors
	termsAccepted bool
	notice        *Notice
}

// NewForm creates an empty form
func NewForm(dispatcher Dispatcher, lang string) *Form {
	return &Form{
		dispatcher: dispatcher,
		lang:       lang,
		state:      StateIdle,
		errors:     validation.Errors{},
	}
}

// Set updates one field by its wire name
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return ErrSubmissionInFlight
	}

	switch field {
	case "visitorName":
		f.sub.VisitorName = value
	case "phone":
		f.sub.Phone = value
	case "visitDate":
		f.sub.VisitDate = value
	case "visitPurpose":
		f.sub.VisitPurpose = value
	case "hostName":
		f.sub.HostName = value
	case "hostPhone":
		f.sub.HostPhone = value
	case "idNumber":
		f.sub.IDNumber = value
	case "carNumber":
		f.sub.CarNumber = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	f.state = StateIdle
	return nil
}

// Submission returns a copy of the current values
func (f *Form) Submission() models.VisitorSubmission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sub
}

// State returns the current state
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Errors returns the per-field errors from the last submit attempt
func (f *Form) Errors() validation.Errors {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(validation.Errors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Check validates the current values without changing state
func (f *Form) Check() validation.Errors {
	return validation.Validate(f.Submission(), f.lang)
}

// TermsAccepted reports whether the visitor has accepted the notice
func (f *Form) TermsAccepted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.termsAccepted
}

// OpenNotice displays the notice for reading
func (f *Form) OpenNotice(contentHeight, viewportHeight int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.notice = NewNotice(contentHeight, viewportHeight)
}

// ScrollNotice reports the reader's scroll offset in the open notice
func (f *Form) ScrollNotice(top int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.notice == nil {
		return ErrNoticeClosed
	}
	f.notice.Scroll(top)
	return nil
}

// CanAcceptTerms reports whether the open notice has been read to the end
func (f *Form) CanAcceptTerms() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice != nil && f.notice.CanAccept()
}

// AcceptTerms records acceptance once the open notice has been read to the end
func (f *Form) AcceptTerms() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.notice == nil || !f.notice.CanAccept() {
		return ErrNoticeUnread
	}
	f.termsAccepted = true
	return nil
}

// Submit validates the form, enforces the notice gate and dispatches the
// submission. On success the form and acceptance are reset; on failure the
// entered values are kept for another attempt.
func (f *Form) Submit(ctx context.Context) (State, error) {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return StateSubmitting, ErrSubmissionInFlight
	}

	f.errors = validation.Validate(f.sub, f.lang)
	if len(f.errors) > 0 {
		f.state = StateInvalid
		f.mu.Unlock()
		return StateInvalid, nil
	}
	if !f.termsAccepted {
		f.state = StateBlockedByTerms
		f.mu.Unlock()
		return StateBlockedByTerms, nil
	}

	f.state = StateSubmitting
	sub := f.sub
	f.mu.Unlock()

	err := f.dispatcher.Dispatch(ctx, sub)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state = StateError
		return StateError, err
	}

	f.state = StateSuccess
	f.sub = models.VisitorSubmission{}
	f.termsAccepted = false
	f.notice = nil
	return StateSuccess, nil
}
