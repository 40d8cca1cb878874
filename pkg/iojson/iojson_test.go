package iojson

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer

	err := WriteLines(&buf, []item{
		{Name: "Amazing Grace", Kind: "song"},
		{Name: "<sunday>", Kind: "playlist"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"name":"Amazing Grace","kind":"song"}`, lines[0])
	assert.Equal(t, `{"name":"<sunday>","kind":"playlist"}`, lines[1])
}

func TestWriteLines_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteLines[item](&buf, nil))
	assert.Empty(t, buf.String())
}

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]int{"songs": 2}))
	assert.JSONEq(t, `{"songs":2}`, out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalError(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, func() {}))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "json_error")
}
