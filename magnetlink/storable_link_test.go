package magnetlink_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/magnet-links-go/magnetlink"
)

func Test_BuildStorableLink_Success(t *testing.T) {
	m, err := magnetlink.ParseMagnetLink(exampleLink)
	require.NoError(t, err)

	storableLink, err := magnetlink.BuildStorableLink(m)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, storableLink.ID)
	assert.Equal(t, exampleLink, storableLink.Link)
	assert.Equal(t, magnetlink.InfoHashString("d2474e86c95b19b8bcfdb92bc12c9d44667cfa36"), storableLink.InfoHash)
	assert.Equal(t, magnetlink.ProtocolString("urn:btih"), storableLink.Protocol)
	assert.Equal(t, "Leaves+of+Grass+by+Walt+Whitman.epub", storableLink.DisplayName)
	assert.WithinDuration(t, time.Now(), storableLink.AddedAt, time.Minute)

	trackers, err := storableLink.Trackers()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"udp://tracker.example4.com:80",
		"udp://tracker.example5.com:80",
		"udp://tracker.example3.com:6969",
		"udp://tracker.example2.com:80",
		"udp://tracker.example1.com:1337",
	}, trackers)
}

func Test_BuildStorableLink_WithoutOptionalFields(t *testing.T) {
	m, err := magnetlink.ParseMagnetLink("magnet:?xt=urn:btih:abc")
	require.NoError(t, err)

	storableLink, err := magnetlink.BuildStorableLink(m)

	require.NoError(t, err)
	assert.Empty(t, storableLink.DisplayName)

	trackers, err := storableLink.Trackers()
	require.NoError(t, err)
	assert.Empty(t, trackers)
}

func Test_BuildStorableLink_FailsOnZeroValueLink(t *testing.T) {
	_, err := magnetlink.BuildStorableLink(magnetlink.MagnetLink{})

	assert.ErrorIs(t, err, magnetlink.ErrInvalidMagnetLink)
}

// Test_BuildStorableLinkFromRow_ErrorCases covers the validation of scalar
// row input coming back from the database.
func Test_BuildStorableLinkFromRow_ErrorCases(t *testing.T) {
	validID := uuid.New().String()
	validTrackersJSON := []byte(`["udp://tracker.example.com:80"]`)
	validTime := time.Now()

	tests := []struct {
		name         string
		id           string
		infoHash     magnetlink.InfoHashString
		trackersJSON []byte
		expectedErr  error
	}{
		{
			name:         "invalid uuid",
			id:           "not-a-uuid",
			infoHash:     "abc",
			trackersJSON: validTrackersJSON,
			expectedErr:  magnetlink.ErrInvalidLinkID,
		},
		{
			name:         "empty info hash",
			id:           validID,
			infoHash:     "",
			trackersJSON: validTrackersJSON,
			expectedErr:  magnetlink.ErrEmptyInfoHash,
		},
		{
			name:         "invalid trackers JSON",
			id:           validID,
			infoHash:     "abc",
			trackersJSON: []byte(`["broken`),
			expectedErr:  magnetlink.ErrInvalidTrackersJSON,
		},
		{
			name:         "nil trackers JSON",
			id:           validID,
			infoHash:     "abc",
			trackersJSON: nil,
			expectedErr:  magnetlink.ErrInvalidTrackersJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := magnetlink.BuildStorableLinkFromRow(
				tt.id, "magnet:?xt=urn:btih:abc", tt.infoHash, "urn:btih", "", tt.trackersJSON, validTime,
			)
			assert.ErrorContains(t, err, tt.expectedErr.Error())
		})
	}
}

func Test_BuildStorableLinkFromRow_Success(t *testing.T) {
	id := uuid.New()
	addedAt := time.Unix(0, 0).UTC()

	storableLink, err := magnetlink.BuildStorableLinkFromRow(
		id.String(),
		"magnet:?xt=urn:btih:abc",
		"abc",
		"urn:btih",
		"some name",
		[]byte(`[]`),
		addedAt,
	)

	require.NoError(t, err)
	assert.Equal(t, id, storableLink.ID)
	assert.Equal(t, "magnet:?xt=urn:btih:abc", storableLink.Link)
	assert.Equal(t, magnetlink.InfoHashString("abc"), storableLink.InfoHash)
	assert.Equal(t, magnetlink.ProtocolString("urn:btih"), storableLink.Protocol)
	assert.Equal(t, "some name", storableLink.DisplayName)
	assert.Equal(t, addedAt, storableLink.AddedAt)
}

func Test_StorableLink_Trackers_FailsOnInvalidJSON(t *testing.T) {
	storableLink := magnetlink.StorableLink{TrackersJSON: []byte(`["broken`)}

	_, err := storableLink.Trackers()

	assert.ErrorIs(t, err, magnetlink.ErrInvalidTrackersJSON)
}
