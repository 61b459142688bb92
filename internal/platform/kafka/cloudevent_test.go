package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudEvent_RoundTrip(t *testing.T) {
	type payload struct {
		PetID string `json:"pet_id"`
	}

	ce, err := NewCloudEvent("service-adoption", "pet.listed", payload{PetID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "1.0", ce.SpecVersion)
	assert.Equal(t, "application/json", ce.DataContentType)
	assert.NotEmpty(t, ce.ID)

	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	parsed, err := ParseCloudEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, ce.ID, parsed.ID)
	assert.Equal(t, "pet.listed", parsed.Type)

	var got payload
	require.NoError(t, parsed.ParseData(&got))
	assert.Equal(t, "abc", got.PetID)
}

func TestParseCloudEvent_Errors(t *testing.T) {
	_, err := ParseCloudEvent([]byte("{"))
	assert.Error(t, err)

	_, err = ParseCloudEvent([]byte(`{"id":"1","source":"x"}`))
	assert.ErrorContains(t, err, "missing type")

	ce := CloudEvent{ID: "empty", Type: "x"}
	assert.Error(t, ce.ParseData(&struct{}{}))
}
