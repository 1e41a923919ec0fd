package session

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const entryFormatVersionCurrent = 1

// Encode serializes an Entry into the compact binary cache format:
// version byte, length-prefixed UserID and Role, big-endian CreatedAt.
// The Token is the Redis key and is never part of the payload.
func Encode(e *Entry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(entryFormatVersionCurrent)

	if len(e.UserID) > 255 {
		return nil, errors.New("userID too long")
	}
	buf.WriteByte(byte(len(e.UserID)))
	buf.WriteString(e.UserID)

	if len(e.Role) > 255 {
		return nil, errors.New("role too long")
	}
	buf.WriteByte(byte(len(e.Role)))
	buf.WriteString(e.Role)

	if err := binary.Write(&buf, binary.BigEndian, e.CreatedAt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode parses a binary cache payload back into an Entry. The caller fills
// in Token from the key it looked up.
func Decode(data []byte) (*Entry, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != entryFormatVersionCurrent {
		return nil, errors.New("invalid entry version")
	}

	e := &Entry{}

	userLen, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	userID := make([]byte, userLen)
	if _, err := io.ReadFull(reader, userID); err != nil {
		return nil, err
	}
	e.UserID = string(userID)

	roleLen, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	role := make([]byte, roleLen)
	if _, err := io.ReadFull(reader, role); err != nil {
		return nil, err
	}
	e.Role = string(role)

	if err := binary.Read(reader, binary.BigEndian, &e.CreatedAt); err != nil {
		return nil, err
	}

	return e, nil
}
