// Package sasl implements the wire shapes of the five SASL control
// composites carried in a SASL frame body. Only framing is in scope here
// (mechanism negotiation and credential verification are out of scope);
// the field lists are supplemented from original_source/amqp-transport/
// src/frame, since the distilled spec names only "SASL control".
package sasl

import (
	"bytes"
	"fmt"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/composite"
	"github.com/relaywire/amqp10/derive"
	"github.com/relaywire/amqp10/internal/options"
	"github.com/relaywire/amqp10/primitive"
)

// Mechanisms is the server's initial SASL advertisement, descriptor 0x40.
type Mechanisms struct {
	_                    derive.Marker         `amqp:"descriptor=amqp:sasl-mechanisms:list,code=0x40"`
	SaslServerMechanisms []primitive.Primitive `amqp:"field,0"`
}

// Init is the client's mechanism selection, descriptor 0x41.
type Init struct {
	_               derive.Marker `amqp:"descriptor=amqp:sasl-init:list,code=0x41"`
	Mechanism       string        `amqp:"field,0"`
	InitialResponse []byte        `amqp:"field,1,optional"`
	HostName        string        `amqp:"field,2,optional"`
}

// Challenge carries a server challenge mid-exchange, descriptor 0x42.
type Challenge struct {
	_         derive.Marker `amqp:"descriptor=amqp:sasl-challenge:list,code=0x42"`
	Challenge []byte        `amqp:"field,0"`
}

// Response carries a client response to a challenge, descriptor 0x43.
type Response struct {
	_        derive.Marker `amqp:"descriptor=amqp:sasl-response:list,code=0x43"`
	Response []byte        `amqp:"field,0"`
}

// OutcomeCode is the one-byte result Outcome reports.
type OutcomeCode uint8

const (
	OutcomeOK OutcomeCode = iota
	OutcomeAuth
	OutcomeSys
	OutcomeSysPerm
	OutcomeSysTemp
)

// Outcome concludes the exchange, descriptor 0x44.
type Outcome struct {
	_              derive.Marker `amqp:"descriptor=amqp:sasl-outcome:list,code=0x44"`
	Code           OutcomeCode   `amqp:"field,0"`
	AdditionalData []byte        `amqp:"field,1,optional"`
}

// Frame is the sum type carried by a SASL frame body, satisfying the
// frame package's Body interface.
type Frame interface {
	isSaslFrame()
	Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error)
}

func (Mechanisms) isSaslFrame() {}
func (Init) isSaslFrame()       {}
func (Challenge) isSaslFrame()  {}
func (Response) isSaslFrame()   {}
func (Outcome) isSaslFrame()    {}

func (m Mechanisms) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return encode(m, dst, opts...)
}
func (i Init) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return encode(i, dst, opts...)
}
func (c Challenge) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return encode(c, dst, opts...)
}
func (r Response) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return encode(r, dst, opts...)
}
func (o Outcome) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return encode(o, dst, opts...)
}

func encode[T any](v T, dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	c, err := derive.Marshal(v)
	if err != nil {
		return nil, err
	}
	return c.Encode(dst, opts...)
}

// Decode reads one SASL control composite from r and dispatches it to its
// concrete type by descriptor.
func Decode(r *bytes.Reader) (Frame, error) {
	c, err := composite.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromComposite(c)
}

// FromComposite dispatches an already-decoded composite to its SASL frame
// variant, the in-memory counterpart of Decode.
func FromComposite(c composite.Composite) (Frame, error) {
	switch c.Descriptor.String() {
	case "amqp:sasl-mechanisms:list", "0x40":
		var v Mechanisms
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:sasl-init:list", "0x41":
		var v Init
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:sasl-challenge:list", "0x42":
		var v Challenge
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:sasl-response:list", "0x43":
		var v Response
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:sasl-outcome:list", "0x44":
		var v Outcome
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("sasl: unrecognized control descriptor %s: %w", c.Descriptor, amqperr.ErrNotImplemented)
	}
}
