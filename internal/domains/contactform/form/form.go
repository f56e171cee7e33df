// Package form holds the reservation form: its values, the submit state machine and the
// banner shown after each attempt.
//
//	idle -> validating -> submitting -> success | error
//
// success and error fall back to idle on the next edit or submit.
package form

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"bayleaf/internal/domains/contactform/model/dto"
	"bayleaf/internal/domains/reservation/model"
	"bayleaf/shared/failure"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

const (
	DefaultGuests = "2"
	LargeParty    = "9+"
)

const (
	BannerSuccess = "success"
	BannerError   = "error"
)

var (
	ErrSubmitting    = errors.New("a submission is already in progress")
	ErrMissingFields = errors.New("required fields are missing")
	ErrLargeParty    = errors.New("parties of 9 or more must call")
)

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldDate    Field = "date"
	FieldTime    Field = "time"
	FieldGuests  Field = "guests"
	FieldMessage Field = "message"
)

type Values struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Guests         string `json:"guests"`
	Message        string `json:"message"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

func DefaultValues() Values {
	return Values{Guests: DefaultGuests}
}

type Banner struct {
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

type Submitter interface {
	SubmitReservation(ctx context.Context, req dto.SubmitReservationRequest) (dto.SubmissionResponse, error)
}

// Form is safe for concurrent use; only one Submit runs at a time.
type Form struct {
	mu           sync.Mutex
	submitter    Submitter
	messages     Messages
	contactPhone string

	state  State
	values Values
	banner Banner
	result dto.SubmissionResponse
}

type Option func(*Form)

func WithLanguage(tag language.Tag) Option {
	return func(f *Form) {
		f.messages = MessagesFor(tag)
	}
}

func WithContactPhone(phone string) Option {
	return func(f *Form) {
		f.contactPhone = phone
	}
}

func New(submitter Submitter, opts ...Option) *Form {
	f := &Form{
		submitter: submitter,
		messages:  MessagesFor(Supported[0]),
		state:     StateIdle,
		values:    DefaultValues(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.values
}

func (f *Form) Banner() Banner {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.banner
}

// Result is the outcome of the last successful submission.
func (f *Form) Result() dto.SubmissionResponse {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.result
}

// Disabled reports whether the controls are locked by a running submission.
func (f *Form) Disabled() bool {
	return f.State() == StateSubmitting
}

// View is a consistent copy of everything a client renders.
type View struct {
	State    State                   `json:"state"`
	Disabled bool                    `json:"disabled"`
	Banner   Banner                  `json:"banner"`
	Values   Values                  `json:"values"`
	Result   *dto.SubmissionResponse `json:"result,omitempty"`
}

func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	view := View{
		State:    f.state,
		Disabled: f.state == StateSubmitting,
		Banner:   f.banner,
		Values:   f.values,
	}

	if f.state == StateSuccess {
		result := f.result
		view.Result = &result
	}

	return view
}

// Set edits one field. Changing a value starts a new logical submission, so the
// idempotency key is dropped.
func (f *Form) Set(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return ErrSubmitting
	}

	target, err := f.field(field)
	if err != nil {
		return err
	}

	f.settle()

	if *target != value {
		*target = value
		f.values.IdempotencyKey = ""
	}

	return nil
}

// Fill replaces all values at once, keeping the idempotency key the client sent along.
// Empty guests fall back to the default.
func (f *Form) Fill(values Values) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return ErrSubmitting
	}

	if strings.TrimSpace(values.Guests) == "" {
		values.Guests = DefaultGuests
	}

	f.settle()
	f.values = values

	return nil
}

// Submit validates the values and hands them to the submitter. Validation failures never
// reach the submitter. On success the values are reset; on failure they are kept, together
// with the idempotency key, so a retry is recognised as the same reservation.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()

	if f.state == StateSubmitting {
		f.mu.Unlock()

		return ErrSubmitting
	}

	f.state = StateValidating
	f.banner = Banner{}

	req, err := f.validate()
	if err != nil {
		f.state = StateError
		f.mu.Unlock()

		return err
	}

	f.state = StateSubmitting
	f.mu.Unlock()

	res, err := f.submitter.SubmitReservation(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state = StateError
		f.banner = Banner{Kind: BannerError, Message: f.messages.Failure}

		switch {
		case failure.IsTimeout(err):
			f.banner.Message = f.messages.Timeout
		case failure.GetCode(err) == http.StatusBadRequest:
			f.banner.Message = f.messages.Invalid
		}

		return fmt.Errorf("failed to submit reservation: %w", err)
	}

	f.state = StateSuccess
	f.values = DefaultValues()
	f.banner = Banner{Kind: BannerSuccess, Message: f.messages.Success}
	f.result = res

	return nil
}

// validate runs under the lock and builds the payload.
func (f *Form) validate() (dto.SubmitReservationRequest, error) {
	var req dto.SubmitReservationRequest

	v := f.values
	for _, required := range []string{v.Name, v.Email, v.Date, v.Time} {
		if strings.TrimSpace(required) == "" {
			f.banner = Banner{Kind: BannerError, Message: f.messages.Required}

			return req, ErrMissingFields
		}
	}

	guests, ok := ParseGuests(v.Guests)
	if !ok {
		f.banner = Banner{Kind: BannerError, Message: fmt.Sprintf(f.messages.LargeParty, f.contactPhone)}

		return req, ErrLargeParty
	}

	if f.values.IdempotencyKey == "" {
		f.values.IdempotencyKey = uuid.NewString()
	}

	req = dto.SubmitReservationRequest{
		IdempotencyKey: f.values.IdempotencyKey,
		Name:           strings.TrimSpace(v.Name),
		Email:          strings.TrimSpace(v.Email),
		Phone:          optional(v.Phone),
		Date:           v.Date,
		Time:           v.Time,
		Guests:         guests,
		Message:        optional(v.Message),
	}

	return req, nil
}

// settle moves a finished attempt back to idle.
func (f *Form) settle() {
	if f.state == StateSuccess || f.state == StateError {
		f.state = StateIdle
		f.banner = Banner{}
	}
}

func (f *Form) field(field Field) (*string, error) {
	switch field {
	case FieldName:
		return &f.values.Name, nil
	case FieldEmail:
		return &f.values.Email, nil
	case FieldPhone:
		return &f.values.Phone, nil
	case FieldDate:
		return &f.values.Date, nil
	case FieldTime:
		return &f.values.Time, nil
	case FieldGuests:
		return &f.values.Guests, nil
	case FieldMessage:
		return &f.values.Message, nil
	}

	return nil, fmt.Errorf("unknown form field %q", field)
}

// ParseGuests accepts 1 to 8. The large party choice is never a number of guests.
func ParseGuests(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = DefaultGuests
	}

	guests, err := strconv.Atoi(value)
	if err != nil || guests < model.MinGuests || guests > model.MaxGuests {
		return 0, false
	}

	return guests, true
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	return &value
}
