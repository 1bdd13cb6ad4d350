package proto

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	gproto "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var ErrWireType = errors.New("unexpected wire type")

// field is one decoded varint or length-delimited value. Other wire types
// are skipped, and messages ignore field numbers they do not know.
type field struct {
	num    protowire.Number
	typ    protowire.Type
	varint uint64
	bytes  []byte
}

func (f field) expect(typ protowire.Type) error {
	if f.typ != typ {
		return fmt.Errorf("%w: field %d has type %d, want %d", ErrWireType, f.num, f.typ, typ)
	}
	return nil
}

func (f field) string() (string, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return "", err
	}
	return string(f.bytes), nil
}

// bytesCopy detaches the value from the codec buffer.
func (f field) bytesCopy() ([]byte, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return nil, err
	}
	return append([]byte(nil), f.bytes...), nil
}

func (f field) int() (int, error) {
	if err := f.expect(protowire.VarintType); err != nil {
		return 0, err
	}
	return int(int64(f.varint)), nil
}

func (f field) time() (time.Time, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return time.Time{}, err
	}
	var ts timestamppb.Timestamp
	if err := gproto.Unmarshal(f.bytes, &ts); err != nil {
		return time.Time{}, err
	}
	return ts.AsTime(), nil
}

func (f field) message(m message) error {
	if err := f.expect(protowire.BytesType); err != nil {
		return err
	}
	return unmarshal(f.bytes, m)
}

func unmarshal(b []byte, m message) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.varint, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		if typ != protowire.VarintType && typ != protowire.BytesType {
			continue
		}
		if err := m.setField(f); err != nil {
			return err
		}
	}
	return nil
}

// Zero values are omitted, as proto3 does for scalar fields.

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendInt(b []byte, num protowire.Number, v int) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendTime(b []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return b
	}
	raw, err := gproto.Marshal(timestamppb.New(t))
	if err != nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, raw)
}

func appendMessage(b []byte, num protowire.Number, m message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.appendWire(nil))
}

// Field numbers. They are part of the wire contract and must not be reused.

func (m *PingRequest) appendWire(b []byte) []byte { return b }
func (m *PingRequest) setField(field) error       { return nil }

func (m *PingResponse) appendWire(b []byte) []byte {
	return appendString(b, 1, m.Status)
}

func (m *PingResponse) setField(f field) (err error) {
	if f.num == 1 {
		m.Status, err = f.string()
	}
	return err
}

func (m *RegisterUserRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Username)
	b = appendBytes(b, 2, m.Salt)
	return appendBytes(b, 3, m.Verifier)
}

func (m *RegisterUserRequest) setField(f field) (err error) {
	switch f.num {
	case 1:
		m.Username, err = f.string()
	case 2:
		m.Salt, err = f.bytesCopy()
	case 3:
		m.Verifier, err = f.bytesCopy()
	}
	return err
}

func (m *RegisterUserResponse) appendWire(b []byte) []byte {
	return appendString(b, 1, m.Username)
}

func (m *RegisterUserResponse) setField(f field) (err error) {
	if f.num == 1 {
		m.Username, err = f.string()
	}
	return err
}

func (m *GetSaltRequest) appendWire(b []byte) []byte {
	return appendString(b, 1, m.Username)
}

func (m *GetSaltRequest) setField(f field) (err error) {
	if f.num == 1 {
		m.Username, err = f.string()
	}
	return err
}

func (m *GetSaltResponse) appendWire(b []byte) []byte {
	return appendBytes(b, 1, m.Salt)
}

func (m *GetSaltResponse) setField(f field) (err error) {
	if f.num == 1 {
		m.Salt, err = f.bytesCopy()
	}
	return err
}

func (m *LoginRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Username)
	return appendBytes(b, 2, m.VerifierCandidate)
}

func (m *LoginRequest) setField(f field) (err error) {
	switch f.num {
	case 1:
		m.Username, err = f.string()
	case 2:
		m.VerifierCandidate, err = f.bytesCopy()
	}
	return err
}

func (m *LoginResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.AccessToken)
	return appendString(b, 2, m.RefreshToken)
}

func (m *LoginResponse) setField(f field) (err error) {
	switch f.num {
	case 1:
		m.AccessToken, err = f.string()
	case 2:
		m.RefreshToken, err = f.string()
	}
	return err
}

func (m *RefreshTokenRequest) appendWire(b []byte) []byte {
	return appendString(b, 1, m.RefreshToken)
}

func (m *RefreshTokenRequest) setField(f field) (err error) {
	if f.num == 1 {
		m.RefreshToken, err = f.string()
	}
	return err
}

func (m *RefreshTokenResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.AccessToken)
	return appendString(b, 2, m.RefreshToken)
}

func (m *RefreshTokenResponse) setField(f field) (err error) {
	switch f.num {
	case 1:
		m.AccessToken, err = f.string()
	case 2:
		m.RefreshToken, err = f.string()
	}
	return err
}

func (m *Account) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.Issuer)
	b = appendString(b, 4, m.IconSlug)
	b = appendString(b, 5, m.Envelope)
	b = appendInt(b, 6, m.Digits)
	b = appendInt(b, 7, m.Period)
	return appendTime(b, 8, m.CreatedAt)
}

func (m *Account) setField(f field) (err error) {
	switch f.num {
	case 1:
		m.ID, err = f.string()
	case 2:
		m.Name, err = f.string()
	case 3:
		m.Issuer, err = f.string()
	case 4:
		m.IconSlug, err = f.string()
	case 5:
		m.Envelope, err = f.string()
	case 6:
		m.Digits, err = f.int()
	case 7:
		m.Period, err = f.int()
	case 8:
		m.CreatedAt, err = f.time()
	}
	return err
}

func (m *ListAccountsRequest) appendWire(b []byte) []byte { return b }
func (m *ListAccountsRequest) setField(field) error       { return nil }

func (m *ListAccountsResponse) appendWire(b []byte) []byte {
	for _, a := range m.Accounts {
		if a != nil {
			b = appendMessage(b, 1, a)
		}
	}
	return b
}

func (m *ListAccountsResponse) setField(f field) error {
	if f.num != 1 {
		return nil
	}
	a := new(Account)
	if err := f.message(a); err != nil {
		return err
	}
	m.Accounts = append(m.Accounts, a)
	return nil
}

func (m *InsertAccountRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Name)
	b = appendString(b, 2, m.Issuer)
	b = appendString(b, 3, m.IconSlug)
	b = appendString(b, 4, m.Envelope)
	b = appendInt(b, 5, m.Digits)
	return appendInt(b, 6, m.Period)
}

func (m *InsertAccountRequest) setField(f field) (err error) {
	switch f.num {
	case 1:
		m.Name, err = f.string()
	case 2:
		m.Issuer, err = f.string()
	case 3:
		m.IconSlug, err = f.string()
	case 4:
		m.Envelope, err = f.string()
	case 5:
		m.Digits, err = f.int()
	case 6:
		m.Period, err = f.int()
	}
	return err
}

func (m *InsertAccountResponse) appendWire(b []byte) []byte {
	if m.Account == nil {
		return b
	}
	return appendMessage(b, 1, m.Account)
}

func (m *InsertAccountResponse) setField(f field) error {
	if f.num != 1 {
		return nil
	}
	m.Account = new(Account)
	return f.message(m.Account)
}

func (m *UpdateAccountRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.Issuer)
	return appendString(b, 4, m.IconSlug)
}

func (m *UpdateAccountRequest) setField(f field) (err error) {
	switch f.num {
	case 1:
		m.ID, err = f.string()
	case 2:
		m.Name, err = f.string()
	case 3:
		m.Issuer, err = f.string()
	case 4:
		m.IconSlug, err = f.string()
	}
	return err
}

func (m *UpdateAccountResponse) appendWire(b []byte) []byte { return b }
func (m *UpdateAccountResponse) setField(field) error       { return nil }

func (m *DeleteAccountRequest) appendWire(b []byte) []byte {
	return appendString(b, 1, m.ID)
}

func (m *DeleteAccountRequest) setField(f field) (err error) {
	if f.num == 1 {
		m.ID, err = f.string()
	}
	return err
}

func (m *DeleteAccountResponse) appendWire(b []byte) []byte { return b }
func (m *DeleteAccountResponse) setField(field) error       { return nil }

func (m *GetIconURLRequest) appendWire(b []byte) []byte {
	return appendString(b, 1, m.Slug)
}

func (m *GetIconURLRequest) setField(f field) (err error) {
	if f.num == 1 {
		m.Slug, err = f.string()
	}
	return err
}

func (m *GetIconURLResponse) appendWire(b []byte) []byte {
	return appendString(b, 1, m.URL)
}

func (m *GetIconURLResponse) setField(f field) (err error) {
	if f.num == 1 {
		m.URL, err = f.string()
	}
	return err
}
