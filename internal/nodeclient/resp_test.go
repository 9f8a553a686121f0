package nodeclient

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestReadReplySimpleString(t *testing.T) {
	v, err := readReply(reader("+OK\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "OK", v)
}

func TestReadReplyError(t *testing.T) {
	v, err := readReply(reader("-ERR bad thing\r\n"))
	require.NoError(t, err)
	assert.Equal(t, respError("ERR bad thing"), v)
}

func TestReadReplyInteger(t *testing.T) {
	v, err := readReply(reader(":42\r\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestReadReplyBulkString(t *testing.T) {
	v, err := readReply(reader("$5\r\nhello\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestReadReplyNilBulkString(t *testing.T) {
	v, err := readReply(reader("$-1\r\n"))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestReadReplyArray(t *testing.T) {
	v, err := readReply(reader("*2\r\n:1\r\n$3\r\nfoo\r\n"))
	require.NoError(t, err)
	arr, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, arr, 2)
	assert.Equal(t, int64(1), arr[0])
	assert.Equal(t, "foo", arr[1])
}

func TestReadReplyNestedArray(t *testing.T) {
	// Shaped like a single CLUSTER SLOTS entry: [start, stop, [host, port]].
	v, err := readReply(reader("*3\r\n:0\r\n:8191\r\n*2\r\n$4\r\nnode\r\n:7000\r\n"))
	require.NoError(t, err)
	arr, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, arr, 3)
	master, ok := arr[2].([]any)
	require.True(t, ok)
	assert.Equal(t, "node", master[0])
	assert.Equal(t, int64(7000), master[1])
}
