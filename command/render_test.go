package command

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderResultPrettyJSON(t *testing.T) {
	buf := new(bytes.Buffer)

	err := RenderResult(buf, map[string]uint64{"satoshi": 1500})

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"satoshi\": 1500\n}\n", buf.String())
}

func TestRenderErrorWithOperation(t *testing.T) {
	buf := new(bytes.Buffer)

	RenderError(buf, &OpError{Op: "sync", Err: errors.New("backend unreachable")})

	assert.Contains(t, buf.String(), `"error": "backend unreachable"`)
	assert.Contains(t, buf.String(), `"operation": "sync"`)
}

func TestRenderErrorPlain(t *testing.T) {
	buf := new(bytes.Buffer)

	RenderError(buf, errors.New("something broke"))

	assert.Contains(t, buf.String(), `"error": "something broke"`)
	assert.NotContains(t, buf.String(), "operation")
}
