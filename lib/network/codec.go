package network

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"

	"boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/envelope"
	benorerrors "boscoin.io/benor/lib/errors"
)

// Codec is the wire format of envelopes between two endpoints.
type Codec interface {
	Name() string
	Encode(envelope.Envelope) ([]byte, error)
	Decode([]byte) (envelope.Envelope, error)
}

type JSONCodec struct{}

func (JSONCodec) Name() string {
	return common.CodecJSON
}

func (JSONCodec) Encode(e envelope.Envelope) ([]byte, error) {
	b, err := e.Serialize()
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode envelope to json")
	}

	return b, nil
}

func (JSONCodec) Decode(b []byte) (envelope.Envelope, error) {
	e, err := envelope.NewEnvelopeFromJSON(b)
	if err != nil {
		return e, errors.Wrap(err, "failed to decode envelope from json")
	}

	return e, nil
}

type MsgpackCodec struct{}

func (MsgpackCodec) Name() string {
	return common.CodecMsgpack
}

func (MsgpackCodec) Encode(e envelope.Envelope) ([]byte, error) {
	b, err := msgpack.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode envelope to msgpack")
	}

	return b, nil
}

func (MsgpackCodec) Decode(b []byte) (e envelope.Envelope, err error) {
	if err = msgpack.Unmarshal(b, &e); err != nil {
		err = errors.Wrap(err, "failed to decode envelope from msgpack")
	}

	return
}

func NewCodec(name string) (Codec, error) {
	switch name {
	case common.CodecMsgpack, "":
		return MsgpackCodec{}, nil
	case common.CodecJSON:
		return JSONCodec{}, nil
	}

	return nil, benorerrors.InvalidCodec.Clone().SetData("codec", name)
}
