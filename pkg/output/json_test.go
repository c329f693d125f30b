package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintRaw(t *testing.T) {
	var buf bytes.Buffer
	body := "not even json\n"

	require.NoError(t, Print(&buf, body, true))
	assert.Equal(t, body, buf.String())
}

func TestPrintSortsKeys(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Print(&buf, `{"zebra":1,"apple":2,"mango":3}`, false))

	out := buf.String()
	assert.Less(t, bytes.Index([]byte(out), []byte("apple")), bytes.Index([]byte(out), []byte("mango")))
	assert.Less(t, bytes.Index([]byte(out), []byte("mango")), bytes.Index([]byte(out), []byte("zebra")))
}

func TestPrintKeepsNonASCII(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Print(&buf, `{"name":"héllo wörld"}`, false))
	assert.Contains(t, buf.String(), "héllo wörld")
	assert.NotContains(t, buf.String(), `\u`)
}

func TestPrintRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	body := `{"rules":[{"id":"r1","tags":{"env":"prod"}}],"total":1}`

	require.NoError(t, Print(&buf, body, false))

	var original, printed any
	require.NoError(t, json.Unmarshal([]byte(body), &original))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &printed))
	assert.Equal(t, original, printed)
}

func TestPrintInvalidJSON(t *testing.T) {
	var buf bytes.Buffer

	err := Print(&buf, "{broken", false)
	assert.ErrorContains(t, err, "failed to parse response as JSON")
}
