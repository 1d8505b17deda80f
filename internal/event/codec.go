package event

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMalformed    = errors.New("malformed event")
	ErrUnknownEvent = errors.New("unknown event type")
	ErrInvalidEvent = errors.New("invalid event")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DecodeInbound parses and validates one client frame.
func DecodeInbound(data []byte) (Inbound, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var in Inbound
	var err error
	switch env.Type {
	case "call":
		in, err = decode[Call](env.Payload)
	case "accept_call":
		in, err = decode[AcceptCall](env.Payload)
	case "reject_call":
		in, err = decode[RejectCall](env.Payload)
	case "end_call":
		in, err = decode[EndCall](env.Payload)
	case "typing":
		in, err = decode[Typing](env.Payload)
	case "send_message":
		in, err = decode[SendMessage](env.Payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Type)
	}
	if err != nil {
		return nil, err
	}
	return in, nil
}

func decode[T Inbound](payload json.RawMessage) (T, error) {
	var v T
	if len(payload) == 0 || string(payload) == "null" {
		return v, fmt.Errorf("%w: missing payload", ErrMalformed)
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := validate.Struct(v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return v, nil
}

// Encode renders an outbound event as a wire frame.
func Encode(o Outbound) ([]byte, error) {
	return json.Marshal(o)
}
