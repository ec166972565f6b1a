/*
Package server implements msgpack IPC for the dictionary engine.

The server package provides a minimal interface for decoding and encoding
queries using msgpack serialization over stdin/stdout.

The protocol uses binary msgpack encoding with one self-delimiting frame
per message. Messages are processed synchronously in arrival order, with
timing info included in responses.

# IPC

The server operates on a request response model where clients send
structured messages via stdin and receive responses through stdout.
Each message carries an ID the response echoes back, an op selector,
and an input string for the ops that take one.

Decoding a keystroke stream:

	{"id": "req_001", "op": "eval", "in": "naums "}
	{"id": "req_001", "x": "你好吗", "t": 112}

Encoding a sentence into the cheapest keystrokes:

	{"id": "req_002", "op": "encode", "in": "你好吗"}
	{"id": "req_002", "f": ["nau", "ms "], "c": 2, "k": "naums ", "t": 587}

Looking up the shortest full code for one word:

	{"id": "req_003", "op": "lookup", "in": "好吗"}
	{"id": "req_003", "w": "好吗", "c": "hzms "}

The info op reports loaded dictionary sizes and takes no input.

Failures come back as an error frame carrying the request ID, a
message, and an HTTP-flavored code:

	{"id": "req_002", "e": "can't generate the sentence from the dictionary, see 'x' at 2", "c": 422}

400 marks malformed or oversized requests, 404 a lookup miss, and 422
a sentence the dictionary cannot cover. Logs go to stderr only; stdout
carries nothing but response frames.
*/
package server

// Request - one incoming frame
type Request struct {
	ID    string `msgpack:"id"`
	Op    string `msgpack:"op"`
	Input string `msgpack:"in,omitempty"`
}

// EvalResponse - decoded text for an eval op
type EvalResponse struct {
	ID        string `msgpack:"id"`
	Text      string `msgpack:"x"`
	TimeTaken int64  `msgpack:"t"`
}

// EncodeResponse - fragment sequence for an encode op
type EncodeResponse struct {
	ID         string   `msgpack:"id"`
	Fragments  []string `msgpack:"f"`
	Count      int      `msgpack:"c"`
	Keystrokes string   `msgpack:"k"`
	TimeTaken  int64    `msgpack:"t"`
}

// LookupResponse - shortest code for a lookup op
type LookupResponse struct {
	ID   string `msgpack:"id"`
	Word string `msgpack:"w"`
	Code string `msgpack:"c"`
}

// InfoResponse - dictionary sizes for an info op
type InfoResponse struct {
	ID      string `msgpack:"id"`
	Entries int    `msgpack:"n"`
	Words   int    `msgpack:"w"`
	Nodes   int    `msgpack:"d"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
