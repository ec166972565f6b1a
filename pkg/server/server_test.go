package server

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/kagura-dev/typeway/internal/logger"
	"github.com/kagura-dev/typeway/pkg/config"
	"github.com/kagura-dev/typeway/pkg/dictionary"
	"github.com/kagura-dev/typeway/pkg/engine"
)

func testEngine() *engine.Engine {
	return engine.New([]dictionary.Entry{
		{Word: "你", Code: "n "},
		{Word: "好", Code: "h "},
		{Word: "吗", Code: "ms "},
		{Word: "你好", Code: "nau"},
		{Word: "好吗", Code: "hzms "},
	})
}

// runServer feeds the requests through a full Start loop and returns
// the response stream for decoding.
func runServer(t *testing.T, cfg *config.Config, requests ...Request) *msgpack.Decoder {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		require.NoError(t, enc.Encode(r))
	}

	var out bytes.Buffer
	srv := &Server{
		engine:  testEngine(),
		config:  cfg,
		decoder: msgpack.NewDecoder(&in),
		encoder: msgpack.NewEncoder(&out),
		log:     logger.New("test"),
	}
	require.NoError(t, srv.Start())
	return msgpack.NewDecoder(&out)
}

func TestServerEval(t *testing.T) {
	dec := runServer(t, config.DefaultConfig(),
		Request{ID: "r1", Op: "eval", Input: "naums "})

	var resp EvalResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "r1", resp.ID)
	assert.Equal(t, "你好吗", resp.Text)
}

func TestServerEncode(t *testing.T) {
	dec := runServer(t, config.DefaultConfig(),
		Request{ID: "r2", Op: "encode", Input: "你好吗"})

	var resp EncodeResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "r2", resp.ID)
	assert.Equal(t, []string{"nau", "ms "}, resp.Fragments)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "naums ", resp.Keystrokes)
}

func TestServerEncodeSegmentationFailure(t *testing.T) {
	dec := runServer(t, config.DefaultConfig(),
		Request{ID: "r3", Op: "encode", Input: "你x"})

	var resp ErrorResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "r3", resp.ID)
	assert.Equal(t, 422, resp.Code)
	assert.Contains(t, resp.Error, "'x' at 1")
}

func TestServerLookup(t *testing.T) {
	dec := runServer(t, config.DefaultConfig(),
		Request{ID: "r4", Op: "lookup", Input: "好吗"},
		Request{ID: "r5", Op: "lookup", Input: "不在"})

	var hit LookupResponse
	require.NoError(t, dec.Decode(&hit))
	assert.Equal(t, "好吗", hit.Word)
	assert.Equal(t, "hzms ", hit.Code)

	var miss ErrorResponse
	require.NoError(t, dec.Decode(&miss))
	assert.Equal(t, "r5", miss.ID)
	assert.Equal(t, 404, miss.Code)
}

func TestServerInfo(t *testing.T) {
	dec := runServer(t, config.DefaultConfig(),
		Request{ID: "r6", Op: "info"})

	var resp InfoResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, 5, resp.Entries)
	assert.Equal(t, 5, resp.Words)
	assert.Equal(t, 8, resp.Nodes)
}

func TestServerUnknownOp(t *testing.T) {
	dec := runServer(t, config.DefaultConfig(),
		Request{ID: "r7", Op: "complete", Input: "你"})

	var resp ErrorResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, 400, resp.Code)
	assert.Contains(t, resp.Error, "complete")
}

func TestServerCapsEvalInput(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxInput = 4

	dec := runServer(t, cfg, Request{ID: "r8", Op: "eval", Input: "naums "})

	var resp ErrorResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, 400, resp.Code)
}

func TestServerCapsEncodeSentence(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxSentence = 2

	dec := runServer(t, cfg, Request{ID: "r9", Op: "encode", Input: "你好吗"})

	var resp ErrorResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, 400, resp.Code)
}

func TestServerKeepsFrameOrder(t *testing.T) {
	dec := runServer(t, config.DefaultConfig(),
		Request{ID: "a", Op: "eval", Input: "nau"},
		Request{ID: "b", Op: "eval", Input: "h "},
		Request{ID: "c", Op: "eval", Input: "q"})

	for _, want := range []struct{ id, text string }{
		{"a", "你好"}, {"b", "好"}, {"c", "q"},
	} {
		var resp EvalResponse
		require.NoError(t, dec.Decode(&resp))
		assert.Equal(t, want.id, resp.ID)
		assert.Equal(t, want.text, resp.Text)
	}
}
