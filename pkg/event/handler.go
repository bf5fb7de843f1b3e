package event

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/schedly/schedly/internal/errdef"
	"github.com/schedly/schedly/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service  Service
	contract *Contract
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service:  service,
		contract: NewStoreContract(),
	}
}

func (h *Handler) FetchAll(w http.ResponseWriter, r *http.Request) {
	log.Trace("Fetching all events")

	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		rest.Internal(w, err)
		return
	}
	rest.OK(w, "All Events Fetched Successfully", events)
}

func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	log.Tracef("Fetching event %s", eventId)

	event, err := h.service.GetEvent(r.Context(), eventId)
	if err != nil {
		if errdef.IsNotFound(err) {
			rest.NotFound(w, "Event Does Not Exist")
			return
		}
		rest.Internal(w, err)
		return
	}
	rest.OK(w, "Event Fetched Successfully", event)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Trace("Creating new event")

	input, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	created, err := h.service.CreateEvent(r.Context(), inputToEvent(input))
	if err != nil {
		rest.Internal(w, err)
		return
	}
	rest.OK(w, "Event Created Successfully", created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	log.Tracef("Updating event %s", eventId)

	input, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	updated, err := h.service.UpdateEvent(r.Context(), eventId, inputToEvent(input))
	if err != nil {
		if errdef.IsNotFound(err) {
			rest.NotFound(w, "Event Does Not Exist")
			return
		}
		rest.Internal(w, err)
		return
	}
	rest.OK(w, "Event Updated Successfully", updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	log.Tracef("Deleting event %s", eventId)

	deleted, err := h.service.DeleteEvent(r.Context(), eventId)
	if err != nil {
		if errdef.IsNotFound(err) {
			rest.NotFound(w, "Event Does Not Exist")
			return
		}
		rest.Internal(w, err)
		return
	}
	rest.OK(w, "Event Deleted Successfully", deleted)
}

// decodeAndValidate parses the body and runs the store contract. It has
// already written the failure envelope when ok is false; nothing is persisted
// on a failed check.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		rest.JSON(w, http.StatusBadRequest, rest.Response{Message: "Invalid request body format"})
		return Input{}, false
	}
	if fieldErrors := h.contract.Validate(input); fieldErrors != nil {
		log.Debugf("Event payload rejected: %v", fieldErrors)
		rest.ValidationFailed(w, fieldErrors)
		return Input{}, false
	}
	return input, true
}

// inputToEvent converts a validated payload to the stored shape. The id is
// server-owned and never taken from the body; absent guest and attachment
// lists default to empty.
func inputToEvent(in Input) Event {
	guest := in.Guest
	if guest == nil {
		guest = []string{}
	}
	attachment := in.Attachment
	if attachment == nil {
		attachment = []Attachment{}
	}
	return Event{
		Name:         in.Name,
		Description:  in.Description,
		Date:         in.Date,
		Time:         in.Time,
		Duration:     Duration(in.Duration),
		Location:     in.Location,
		MeetingRoom:  in.MeetingRoom,
		Guest:        guest,
		Attachment:   attachment,
		Notification: in.Notification,
		Reminder:     in.Reminder,
	}
}

// EventToInput seeds a form session from a stored event.
func EventToInput(e Event) Input {
	id := ""
	if !e.ID.IsZero() {
		id = e.ID.Hex()
	}
	return Input{
		ID:           id,
		Name:         e.Name,
		Description:  e.Description,
		Date:         e.Date,
		Time:         e.Time,
		Duration:     DurationIn(e.Duration),
		Location:     e.Location,
		MeetingRoom:  e.MeetingRoom,
		Guest:        e.Guest,
		Attachment:   e.Attachment,
		Notification: e.Notification,
		Reminder:     e.Reminder,
	}
}
