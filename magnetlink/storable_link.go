package magnetlink

import (
	"bytes"
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var ErrInvalidTrackersJSON = errors.New("trackers json is not valid")
var ErrInvalidLinkID = errors.New("link id is not a valid uuid")
var ErrEmptyInfoHash = errors.New("info hash must not be empty")

// StorableLinks is an alias type for a slice of StorableLink
type StorableLinks = []StorableLink

// StorableLink is a DTO (data transfer object) used by the LinkStore to save
// magnet links and query them back.
//
// It is a flattened projection of a MagnetLink: the first exact topic's info
// hash and protocol, the display name and the tracker list, next to the
// original link text. It is built on scalars so the store stays agnostic of
// the view types.
//
// While its properties are exported, it should only be constructed with the
// supplied factory methods:
//   - BuildStorableLink
//   - BuildStorableLinkFromRow
type StorableLink struct {
	ID           uuid.UUID
	Link         string
	InfoHash     InfoHashString
	Protocol     ProtocolString
	DisplayName  string
	TrackersJSON []byte
	AddedAt      time.Time
}

// BuildStorableLink is a factory method for StorableLink.
//
// It projects the persisted fields out of a parsed MagnetLink through its
// accessors, serializes the tracker list as JSON, and assigns a fresh ID and
// the current time. Returns ErrInvalidMagnetLink when m is a zero value that
// did not come out of ParseMagnetLink.
func BuildStorableLink(m MagnetLink) (StorableLink, error) {
	if m.u == nil {
		return StorableLink{}, ErrInvalidMagnetLink
	}

	var infoHash InfoHashString
	var protocol ProtocolString

	for hash := range m.InfoHashes().All() {
		infoHash = hash
		break
	}

	for proto := range m.Protocols().All() {
		protocol = proto
		break
	}

	if infoHash == "" {
		return StorableLink{}, ErrInvalidMagnetLink
	}

	var displayName string
	if dn, found := m.DisplayName(); found {
		displayName = dn.String()
	}

	var buf bytes.Buffer
	trackers := make([]string, 0)

	for tracker := range m.AddressTrackers(&buf).All() {
		trackers = append(trackers, tracker.String())
	}

	trackersJSON, marshalErr := jsoniter.ConfigFastest.Marshal(trackers)
	if marshalErr != nil {
		return StorableLink{}, errors.Join(ErrInvalidTrackersJSON, marshalErr)
	}

	return StorableLink{
		ID:           uuid.New(),
		Link:         m.String(),
		InfoHash:     infoHash,
		Protocol:     protocol,
		DisplayName:  displayName,
		TrackersJSON: trackersJSON,
		AddedAt:      time.Now(),
	}, nil
}

// BuildStorableLinkFromRow is a factory method for StorableLink used when
// scanning database rows.
//
// It validates the scalar input: id must be a valid UUID, infoHash must not
// be empty, and trackersJSON must be valid JSON.
func BuildStorableLinkFromRow(
	id string,
	link string,
	infoHash InfoHashString,
	protocol ProtocolString,
	displayName string,
	trackersJSON []byte,
	addedAt time.Time,
) (StorableLink, error) {

	parsedID, parseErr := uuid.Parse(id)
	if parseErr != nil {
		return StorableLink{}, errors.Join(ErrInvalidLinkID, parseErr)
	}

	if infoHash == "" {
		return StorableLink{}, ErrEmptyInfoHash
	}

	if !jsoniter.ConfigFastest.Valid(trackersJSON) {
		return StorableLink{}, ErrInvalidTrackersJSON
	}

	return StorableLink{
		ID:           parsedID,
		Link:         link,
		InfoHash:     infoHash,
		Protocol:     protocol,
		DisplayName:  displayName,
		TrackersJSON: trackersJSON,
		AddedAt:      addedAt,
	}, nil
}

// Trackers deserializes the tracker list.
func (sl StorableLink) Trackers() ([]string, error) {
	var trackers []string

	if err := jsoniter.ConfigFastest.Unmarshal(sl.TrackersJSON, &trackers); err != nil {
		return nil, errors.Join(ErrInvalidTrackersJSON, err)
	}

	return trackers, nil
}
