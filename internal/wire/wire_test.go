package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRoundTripsMillisecondPrecisionRFC3339(t *testing.T) {
	now := Now()
	data, err := now.MarshalJSON()
	require.NoError(t, err)
	assert.Regexp(t, `^"\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z"$`, string(data))

	var parsed Time
	require.NoError(t, parsed.UnmarshalJSON(data))
	assert.True(t, parsed.Equal(now.Time))
}

func TestTimeUnmarshalAcceptsExternalRFC3339(t *testing.T) {
	var parsed Time
	require.NoError(t, parsed.UnmarshalJSON([]byte(`"2024-01-02T03:04:05.678Z"`)))
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestParseRequestMessage(t *testing.T) {
	req, transaction, err := ParseRequest([]byte(`{"textroom":"message","type":"chat","text":"hi"}`))
	require.NoError(t, err)
	assert.Empty(t, transaction)
	require.NotNil(t, req.Message)
	assert.Equal(t, "chat", req.Message.Type)
	assert.Equal(t, "hi", req.Message.Text)
}

func TestParseRequestAnnouncementWithTransaction(t *testing.T) {
	raw := `{"textroom":"announcement","type":"info","text":"hello","secret":"s","transaction":"t1"}`
	req, _, err := ParseRequest([]byte(raw))
	require.NoError(t, err)
	require.NotNil(t, req.Announcement)
	assert.Equal(t, "t1", req.Transaction())
}

func TestParseRequestUnknownKindRecoversTransaction(t *testing.T) {
	raw := `{"textroom":"poke","transaction":"t9"}`
	_, transaction, err := ParseRequest([]byte(raw))
	require.Error(t, err)
	assert.Equal(t, "t9", transaction)
}

func TestParseRequestMalformedJSONRecoversNothing(t *testing.T) {
	_, transaction, err := ParseRequest([]byte(`not json`))
	require.Error(t, err)
	assert.Empty(t, transaction)
}

func TestResponseShapes(t *testing.T) {
	assert.Equal(t, Response{Transaction: "t", Ok: "left"}, Left("t"))
	assert.Equal(t, "Secret does not match.", SecretMismatch("").Error)
	assert.Equal(t, "Room was destroyed", RoomDestroyed("").Error)
}
