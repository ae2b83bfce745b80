package interra

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		cmd   Command
		token json.RawMessage
		want  string
	}{
		{
			name:  "login",
			cmd:   loginCommand("user", "pw"),
			token: nil,
			want:  `{'data':{'userName':'user','password':'pw'},'meta':{'authID':null,'content_type':null,'error':null,'errorCode':null,'flags':null,'requestType':500,'scheme':null,'serverDateTime':null,'server_version':null,'version':null}}` + "\n",
		},
		{
			name:  "switch light on",
			cmd:   switchLightCommand(13, true),
			token: json.RawMessage(`"tok"`),
			want:  `{'data':{'actionType':'1','id':'13','url':null,'value':'0'},'meta':{'authID':"tok",'content_type':null,'error':null,'errorCode':null,'flags':null,'requestType':14,'scheme':null,'serverDateTime':null,'server_version':null,'version':null}}` + "\n",
		},
		{
			name:  "switch light off",
			cmd:   switchLightCommand(146, false),
			token: json.RawMessage(`"tok"`),
			want:  `{'data':{'actionType':'2','id':'146','url':null,'value':'0'},'meta':{'authID':"tok",'content_type':null,'error':null,'errorCode':null,'flags':null,'requestType':14,'scheme':null,'serverDateTime':null,'server_version':null,'version':null}}` + "\n",
		},
		{
			name:  "ac query",
			cmd:   queryCommand(12, ObjectAC),
			token: json.RawMessage(`"tok"`),
			want:  `{'data':{'id':'12','objectType':'4'},'meta':{'authID':"tok",'content_type':null,'error':null,'errorCode':null,'flags':null,'requestType':20,'scheme':null,'serverDateTime':null,'server_version':null,'version':null}}` + "\n",
		},
		{
			name:  "ac step up",
			cmd:   acCommand(acStepUp),
			token: json.RawMessage(`"tok"`),
			want:  `{'data':{'actionType':13,'id':'64','url':null,'value':'0'},'meta':{'authID':"tok",'content_type':null,'error':null,'errorCode':null,'flags':null,'requestType':14,'scheme':null,'serverDateTime':null,'server_version':null,'version':null}}` + "\n",
		},
		{
			name:  "flags and no data",
			cmd:   Command{RequestType: 7, Flags: Object{{Key: "force", Value: true}}},
			token: json.RawMessage(`42`),
			want:  `{'data':null,'meta':{'authID':42,'content_type':null,'error':null,'errorCode':null,'flags':{'force':true},'requestType':7,'scheme':null,'serverDateTime':null,'server_version':null,'version':null}}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Encode(tt.cmd, tt.token)))
		})
	}
}

func TestEncode_EscapesQuotes(t *testing.T) {
	frame := Encode(loginCommand(`o'neil`, `back\slash`), nil)
	assert.Contains(t, string(frame), `'userName':'o\'neil','password':'back\\slash'`)
}

func TestDecode(t *testing.T) {
	resp, err := Decode([]byte(`{"data":[{"id":13,"isActive":true}],"meta":{"authID":"abc"}}` + "\r\n"))
	require.NoError(t, err)

	data, ok := resp.Data()
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":13,"isActive":true}]`, string(data))

	token, ok := resp.Token()
	require.True(t, ok)
	assert.Equal(t, `"abc"`, string(token))
	assert.False(t, resp.IsEcho())
}

func TestDecode_Malformed(t *testing.T) {
	for _, line := range []string{"", "not json", "[1,2]", "null", `{"data":`} {
		t.Run(line, func(t *testing.T) {
			_, err := Decode([]byte(line))
			assert.ErrorIs(t, err, device.ErrMalformedResponse)
		})
	}
}

func TestResponse_Token(t *testing.T) {
	tests := []struct {
		line string
		ok   bool
	}{
		{`{"meta":{"authID":"t"}}`, true},
		{`{"meta":{"authID":17}}`, true},
		{`{"meta":{"authID":null}}`, false},
		{`{"meta":{}}`, false},
		{`{"data":1}`, false},
	}
	for _, tt := range tests {
		resp, err := Decode([]byte(tt.line))
		require.NoError(t, err)
		_, ok := resp.Token()
		assert.Equal(t, tt.ok, ok, tt.line)
	}
}

func TestResponse_IsEcho(t *testing.T) {
	tests := []struct {
		line string
		echo bool
	}{
		{`{"data":{"readValue":"1","isActive":true,"id":108},"meta":{"requestType":19}}`, true},
		{`{"data":{"id":107}}`, false},
		{`{"data":{"id":"108"}}`, false},
		{`{"data":null}`, false},
		{`{"meta":{"id":108}}`, false},
	}
	for _, tt := range tests {
		resp, err := Decode([]byte(tt.line))
		require.NoError(t, err)
		assert.Equal(t, tt.echo, resp.IsEcho(), tt.line)
	}
}

func TestIsAck(t *testing.T) {
	assert.True(t, isAck([]byte("{}\n")))
	assert.True(t, isAck([]byte(`{"meta":{"requestType":0}}`)))
	assert.True(t, isAck([]byte(`{"meta":{"data":1}}`)))
	assert.False(t, isAck([]byte(`{"data":null}`)))
	assert.False(t, isAck([]byte(`{"data":{"id":108}}`)))
	assert.False(t, isAck([]byte("garbage")))
}
