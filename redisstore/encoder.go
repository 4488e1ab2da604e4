package redisstore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"time"

	goGate "github.com/MrEthical07/goGate"
	"github.com/MrEthical07/goGate/session"
)

const (
	recordFormatVersionCurrent = 1
)

func encodeRecord(rec *goGate.UserRecord) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(recordFormatVersionCurrent)

	for _, field := range []string{
		rec.ID,
		rec.Username,
		rec.PasswordHash,
		string(rec.Role),
		rec.Session.Token,
	} {
		if len(field) > 255 {
			return nil, errors.New("record field too long")
		}
		buf.WriteByte(byte(len(field)))
		buf.WriteString(field)
	}

	var expires int64
	if !rec.Session.ExpiresAt.IsZero() {
		expires = rec.Session.ExpiresAt.UnixNano()
	}
	if err := binary.Write(&buf, binary.BigEndian, expires); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func decodeRecord(data []byte) (*goGate.UserRecord, error) {
	r := bytes.NewReader(data)

	version, err := r.ReadByte()
	if err != nil {
		return nil, errors.New("record blob truncated")
	}
	if version != recordFormatVersionCurrent {
		return nil, errors.New("unsupported record version")
	}

	fields := make([]string, 5)
	for i := range fields {
		fields[i], err = readString(r)
		if err != nil {
			return nil, err
		}
	}

	var expires int64
	if err := binary.Read(r, binary.BigEndian, &expires); err != nil {
		return nil, errors.New("record blob truncated")
	}
	if r.Len() != 0 {
		return nil, errors.New("record blob has trailing bytes")
	}

	rec := &goGate.UserRecord{
		ID:           fields[0],
		Username:     fields[1],
		PasswordHash: fields[2],
		Role:         goGate.Role(fields[3]),
		Session: session.State{
			Token: fields[4],
		},
	}
	if expires != 0 {
		rec.Session.ExpiresAt = time.Unix(0, expires).UTC()
	}

	return rec, nil
}

func readString(r *bytes.Reader) (string, error) {
	length, err := r.ReadByte()
	if err != nil {
		return "", errors.New("record blob truncated")
	}
	if length == 0 {
		return "", nil
	}

	raw := make([]byte, length)
	if _, err := io.ReadFull(r, raw); err != nil {
		return "", errors.New("record blob truncated")
	}
	return string(raw), nil
}
