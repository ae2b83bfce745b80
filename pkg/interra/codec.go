package interra

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

// Request kinds carried in meta.requestType
const (
	RequestLogin   = 500
	RequestActuate = 14
	RequestQuery   = 20
)

// Object types for query commands
const (
	ObjectLights = 1
	ObjectAC     = 4
)

// EchoDeviceID marks spontaneous heartbeat echoes that are never replies.
const EchoDeviceID = 108

// probeFrame is the keepalive frame. The hub answers it with a line that
// has no data field.
var probeFrame = []byte("{}\n")

// Field is one key of an Object.
type Field struct {
	Key   string
	Value any
}

// Object is an ordered set of fields rendered in the hub's frame syntax.
// Values may be nil, string, bool, any integer type, json.RawMessage or a
// nested Object.
type Object []Field

// Command is one outbound request.
type Command struct {
	Data        Object
	RequestType int
	Flags       Object
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Encode renders cmd as one newline-terminated frame. token is written
// verbatim as the raw value the hub issued at login; an empty token renders
// as null.
func Encode(cmd Command, token json.RawMessage) []byte {
	var b bytes.Buffer
	b.WriteString("{'data':")
	writeValue(&b, cmd.Data)
	b.WriteString(",'meta':{'authID':")
	if len(token) == 0 {
		b.WriteString("null")
	} else {
		b.Write(token)
	}
	b.WriteString(",'content_type':null,'error':null,'errorCode':null,'flags':")
	writeValue(&b, cmd.Flags)
	b.WriteString(",'requestType':")
	b.WriteString(strconv.Itoa(cmd.RequestType))
	b.WriteString(",'scheme':null,'serverDateTime':null,'server_version':null,'version':null}}\n")
	return b.Bytes()
}

func writeValue(b *bytes.Buffer, v any) {
	switch v := v.(type) {
	case nil:
		b.WriteString("null")
	case Object:
		if v == nil {
			b.WriteString("null")
			return
		}
		b.WriteByte('{')
		for i, f := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, f.Key)
			b.WriteByte(':')
			writeValue(b, f.Value)
		}
		b.WriteByte('}')
	case string:
		writeString(b, v)
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case json.RawMessage:
		b.Write(v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		fmt.Fprintf(b, "%d", v)
	default:
		panic(fmt.Sprintf("interra: cannot encode %T", v))
	}
}

func writeString(b *bytes.Buffer, s string) {
	b.WriteByte('\'')
	b.WriteString(quoteEscaper.Replace(s))
	b.WriteByte('\'')
}

// Response is one decoded inbound line.
type Response struct {
	raw    []byte
	fields map[string]json.RawMessage
}

// Decode parses one inbound line. The hub replies with JSON objects; any
// other line fails with device.ErrMalformedResponse.
func Decode(line []byte) (Response, error) {
	line = bytes.TrimSpace(line)
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return Response{}, fmt.Errorf("%w: %v", device.ErrMalformedResponse, err)
	}
	if fields == nil {
		return Response{}, fmt.Errorf("%w: line is not an object", device.ErrMalformedResponse)
	}
	return Response{raw: line, fields: fields}, nil
}

// Raw returns the line as received, without surrounding whitespace.
func (r Response) Raw() []byte {
	return r.raw
}

// Data returns the data section and whether the line carried one.
func (r Response) Data() (json.RawMessage, bool) {
	data, ok := r.fields["data"]
	return data, ok
}

// Token returns meta.authID as raw JSON. A missing or null token reports
// false.
func (r Response) Token() (json.RawMessage, bool) {
	var meta map[string]json.RawMessage
	if err := json.Unmarshal(r.fields["meta"], &meta); err != nil {
		return nil, false
	}
	token, ok := meta["authID"]
	if !ok || string(token) == "null" {
		return nil, false
	}
	return token, true
}

// IsEcho reports whether the line is a heartbeat echo (data.id == 108).
func (r Response) IsEcho() bool {
	id, err := jsonparser.GetInt(r.raw, "data", "id")
	return err == nil && id == EchoDeviceID
}

// isAck reports whether line is the hub's no-op acknowledgement: valid JSON
// with no top-level data field.
func isAck(line []byte) bool {
	line = bytes.TrimSpace(line)
	if !json.Valid(line) {
		return false
	}
	_, _, _, err := jsonparser.Get(line, "data")
	return errors.Is(err, jsonparser.KeyPathNotFoundError)
}
