package iojson

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer

	err := WriteLine(&buf, map[string]string{"title": "Adopt caching"})
	require.NoError(t, err)
	assert.Equal(t, "{\"title\":\"Adopt caching\"}\n", buf.String())
}

func TestWriteWith(t *testing.T) {
	var buf bytes.Buffer

	err := WriteWith(&buf, &bytes.Buffer{}, map[string]int{"count": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"count\": 2\n}\n", buf.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, make(chan int))
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "json_error")
}
