package form

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/schedly/schedly/pkg/assethost"
	"github.com/schedly/schedly/pkg/client"
	"github.com/schedly/schedly/pkg/event"
	log "github.com/sirupsen/logrus"
)

// State is the lifecycle phase of a form session.
type State string

const (
	StateIdle       State = "idle"
	StateLoading    State = "loading"
	StateEditable   State = "editable"
	StateSubmitting State = "submitting"
	StateClosed     State = "closed"
)

var (
	// ErrInvalidEmail rejects a guest candidate; the list is left unchanged.
	ErrInvalidEmail = errors.New("Invalid Email")
	// ErrInvalidDetails aborts a submit whose tracked fields failed the form
	// contract; per-field messages are available via FieldErrors.
	ErrInvalidDetails = errors.New("Invalid Details. Please check all the details")
	// ErrNotEditable rejects an action while the session is not editable.
	ErrNotEditable = errors.New("form is not editable")
)

// File is one selected file to attach.
type File struct {
	Name    string
	Content io.Reader
}

// Controller drives a single event's create/edit session: it owns the tracked
// fields, the guest and attachment mirrors, and the submit flow. The guest
// and attachment lists live outside the validated fields because they are
// mutated through dedicated add/remove actions and merged back in only at
// submit time.
type Controller struct {
	api      client.API
	assets   assethost.Client
	contract *event.Contract

	state       State
	eventID     string
	fields      event.Input
	guests      []string
	attachments []event.Attachment
	fieldErrors event.FieldErrors

	onClose func()
}

func defaultFields() event.Input {
	location := ""
	return event.Input{
		Name:         "",
		Description:  "",
		Date:         "",
		Time:         "",
		Duration:     event.DurationIn{Hr: "", M: ""},
		Location:     &location,
		MeetingRoom:  "",
		CurrentGuest: "",
		Attachment:   []event.Attachment{},
		Notification: event.NotificationEmail,
		Reminder:     "",
		Guest:        []string{},
	}
}

// NewCreate opens a create session, immediately editable with defaults.
func NewCreate(api client.API, assets assethost.Client, onClose func()) *Controller {
	return &Controller{
		api:         api,
		assets:      assets,
		contract:    event.NewFormContract(),
		state:       StateEditable,
		fields:      defaultFields(),
		guests:      []string{},
		attachments: []event.Attachment{},
		onClose:     onClose,
	}
}

// NewEdit opens an edit session for the given event. The session is idle
// until Load fetches the record.
func NewEdit(api client.API, assets assethost.Client, eventID string, onClose func()) *Controller {
	c := NewCreate(api, assets, onClose)
	c.state = StateIdle
	c.eventID = eventID
	return c
}

// Load fetches the existing event and seeds every editable field, including
// the guest and attachment mirrors. Interaction is blocked while loading.
func (c *Controller) Load(ctx context.Context) error {
	if c.state != StateIdle {
		return fmt.Errorf("cannot load in state %s", c.state)
	}
	c.state = StateLoading

	fetched, err := c.api.Fetch(ctx, c.eventID)
	if err != nil {
		c.state = StateIdle
		return fmt.Errorf("failed to load event %s: %w", c.eventID, err)
	}

	c.fields = event.EventToInput(fetched)
	c.fields.CurrentGuest = ""
	c.guests = append([]string{}, fetched.Guest...)
	c.attachments = append([]event.Attachment{}, fetched.Attachment...)
	c.state = StateEditable
	return nil
}

func (c *Controller) State() State { return c.state }

// Fields exposes the tracked fields for direct edits, mirroring how the form
// binds inputs to them.
func (c *Controller) Fields() *event.Input { return &c.fields }

func (c *Controller) Guests() []string { return c.guests }

func (c *Controller) Attachments() []event.Attachment { return c.attachments }

// FieldErrors returns the per-field messages of the last failed submit.
func (c *Controller) FieldErrors() event.FieldErrors { return c.fieldErrors }

// AddGuest validates the scratch field as an email address and appends it to
// the guest list, clearing the input. A rejected candidate never reaches the
// list.
func (c *Controller) AddGuest() error {
	if c.state != StateEditable {
		return ErrNotEditable
	}
	candidate := c.fields.CurrentGuest
	if candidate == "" || !event.IsEmail(candidate) {
		log.Debugf("Rejected guest candidate %q", candidate)
		return ErrInvalidEmail
	}
	c.guests = append(c.guests, candidate)
	c.fields.CurrentGuest = ""
	return nil
}

// RemoveGuest filters the guest out by exact string match.
func (c *Controller) RemoveGuest(guest string) {
	filtered := make([]string, 0, len(c.guests))
	for _, g := range c.guests {
		if g != guest {
			filtered = append(filtered, g)
		}
	}
	c.guests = filtered
}

// AttachFiles uploads each file to the asset host and appends the returned
// descriptors. A failed upload stops the loop and is reported, but files
// already uploaded stay attached; there is no rollback.
func (c *Controller) AttachFiles(ctx context.Context, files ...File) error {
	if c.state != StateEditable {
		return ErrNotEditable
	}
	for _, file := range files {
		attachment, err := c.assets.Upload(ctx, file.Name, file.Content)
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", file.Name, err)
		}
		c.attachments = append(c.attachments, attachment)
	}
	return nil
}

// RemoveAttachment destroys the remote asset, then drops matching entries
// from the local list by original filename. When the destroy call fails the
// list is left unchanged and the failure is reported.
func (c *Controller) RemoveAttachment(ctx context.Context, attachment event.Attachment) error {
	if c.state != StateEditable {
		return ErrNotEditable
	}
	if err := c.assets.Destroy(ctx, attachment.PublicID); err != nil {
		return fmt.Errorf("failed to destroy %s: %w", attachment.PublicID, err)
	}
	filtered := make([]event.Attachment, 0, len(c.attachments))
	for _, a := range c.attachments {
		if a.OriginalFilename != attachment.OriginalFilename {
			filtered = append(filtered, a)
		}
	}
	c.attachments = filtered
	return nil
}

// Submit runs the form contract over the tracked fields; a failure annotates
// the offending fields and aborts with no network call. On success the guest
// and attachment mirrors are merged in, transient and server-owned fields are
// stripped, and the create or update call is issued. A successful call closes
// the session and fires the parent refresh callback; a failed one returns the
// session to editable with the error surfaced.
func (c *Controller) Submit(ctx context.Context) error {
	if c.state != StateEditable {
		return ErrNotEditable
	}

	c.fieldErrors = c.contract.Validate(c.fields)
	if c.fieldErrors != nil {
		log.Debugf("Form submit rejected: %v", c.fieldErrors)
		return ErrInvalidDetails
	}

	c.state = StateSubmitting

	payload := c.fields
	payload.CurrentGuest = ""
	payload.Guest = c.guests
	payload.Attachment = c.attachments
	payload.ID = ""

	var err error
	if c.eventID == "" {
		_, err = c.api.Create(ctx, payload)
	} else {
		_, err = c.api.Update(ctx, c.eventID, payload)
	}
	if err != nil {
		c.state = StateEditable
		return fmt.Errorf("failed to submit event: %w", err)
	}

	c.state = StateClosed
	if c.onClose != nil {
		c.onClose()
	}
	return nil
}
