package event

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationEmail = "email"
	NotificationSlack = "slack"
)

// MeetingRooms is the fixed set of valid meetingRoom values.
var MeetingRooms = []string{
	"Conference Room 1",
	"Conference Room 2",
	"Conference Room 3",
}

// Event is the stored shape of an event. The wire format and the storage
// format are the same document.
type Event struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Date         string             `bson:"date" json:"date"`
	Time         string             `bson:"time" json:"time"`
	Duration     Duration           `bson:"duration" json:"duration"`
	Location     *string            `bson:"location" json:"location"`
	MeetingRoom  string             `bson:"meetingRoom,omitempty" json:"meetingRoom,omitempty"`
	Guest        []string           `bson:"guest" json:"guest"`
	Attachment   []Attachment       `bson:"attachment" json:"attachment"`
	Notification string             `bson:"notification" json:"notification"`
	Reminder     string             `bson:"reminder" json:"reminder"`
}

// Duration is the event length, kept as the numeric strings the form submits.
type Duration struct {
	Hr string `bson:"hr" json:"hr"`
	M  string `bson:"m" json:"m"`
}

// Attachment references an asset hosted by the external binary-asset service.
// The event only stores the descriptor returned by the host; the asset itself
// lives remotely and is created/destroyed through pkg/assethost.
type Attachment struct {
	AssetID          string   `bson:"asset_id" json:"asset_id"`
	PublicID         string   `bson:"public_id" json:"public_id"`
	Version          int64    `bson:"version" json:"version"`
	VersionID        string   `bson:"version_id" json:"version_id"`
	Signature        string   `bson:"signature" json:"signature"`
	Width            int      `bson:"width" json:"width"`
	Height           int      `bson:"height" json:"height"`
	Format           string   `bson:"format" json:"format"`
	ResourceType     string   `bson:"resource_type" json:"resource_type"`
	CreatedAt        string   `bson:"created_at" json:"created_at"`
	Tags             []string `bson:"tags" json:"tags"`
	Bytes            int64    `bson:"bytes" json:"bytes"`
	Type             string   `bson:"type" json:"type"`
	Etag             string   `bson:"etag" json:"etag"`
	Placeholder      bool     `bson:"placeholder" json:"placeholder"`
	URL              string   `bson:"url" json:"url"`
	SecureURL        string   `bson:"secure_url" json:"secure_url"`
	Folder           string   `bson:"folder" json:"folder"`
	AccessMode       string   `bson:"access_mode" json:"access_mode"`
	Existing         bool     `bson:"existing" json:"existing"`
	OriginalFilename string   `bson:"original_filename" json:"original_filename"`
}
