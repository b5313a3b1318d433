package aojia

import (
	"github.com/google/uuid"

	"github.com/smnsjas/go-aojia/dispatch"
	"github.com/smnsjas/go-aojia/session"
)

// Client calls the automation object through an open Session.
type Client struct {
	s *session.Session
}

// New opens a Session with cfg and returns a Client over it. The calling
// goroutine is locked to its OS thread until Close.
func New(cfg session.Config) (*Client, error) {
	s, err := session.Open(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{s: s}, nil
}

// NewFromSession wraps an already open Session.
func NewFromSession(s *session.Session) *Client {
	return &Client{s: s}
}

// ID returns the identifier of the underlying session.
func (c *Client) ID() uuid.UUID {
	return c.s.ID()
}

// Session returns the underlying session.
func (c *Client) Session() *session.Session {
	return c.s
}

// Close closes the underlying session.
func (c *Client) Close() error {
	return c.s.Close()
}

// Call invokes a method that has no typed wrapper. params are given in
// caller-visible order; out values are read from the returned Call.
//
//	call, err := c.Call("GetMousePos",
//	    dispatch.OutParam("x"), dispatch.OutParam("y"), dispatch.InParam("Type", variant.NewInt32(0)))
//	x := call.Out("x").Int32Or(-1)
func (c *Client) Call(method string, params ...dispatch.Param) (*dispatch.Call, error) {
	call := c.s.NewCall(method)
	for _, p := range params {
		call.AddParam(p)
	}
	_, err := call.Invoke()
	return call, err
}

// CallSignature invokes sig with in values converted to the declared tags.
func (c *Client) CallSignature(sig dispatch.Signature, in ...interface{}) (*dispatch.Result, error) {
	return c.s.Call(sig, in...)
}

// callInt performs sig and reads the return value as int32. A failed call
// returns -1 and the error; an unconvertible result reads as -1. res is
// nil on failure, and reading out values from a nil res yields fallbacks.
func (c *Client) callInt(sig dispatch.Signature, in ...interface{}) (int32, *dispatch.Result, error) {
	res, err := c.s.Call(sig, in...)
	if err != nil {
		return -1, nil, err
	}
	return res.Value.Int32Or(-1), res, nil
}

// callString performs sig and reads the return value as text. Conversion
// failures are returned.
func (c *Client) callString(sig dispatch.Signature, in ...interface{}) (string, error) {
	res, err := c.s.Call(sig, in...)
	if err != nil {
		return "", err
	}
	return res.Value.AsString()
}

// outInt reads an out value, -1 when it cannot be converted.
func outInt(res *dispatch.Result, name string) int32 {
	return res.Out(name).Int32Or(-1)
}

// outString reads an out value, "" when it cannot be converted.
func outString(res *dispatch.Result, name string) string {
	return res.Out(name).StringOr("")
}
