package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseHasData(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{`{"success":true}`, false},
		{`{"success":true,"data":null}`, false},
		{`{"success":true,"data":[]}`, false},
		{`{"success":true,"data":[{"id":1}]}`, true},
		{`{"success":true,"data":{"id":1}}`, true},
		{`{"success":true,"data":[ ]}`, false},
		{"{\"success\":true,\"data\":[\n]}", false},
		{`{"success":true,"data": null }`, false},
		{`{"success":true,"data":[ {"id":1} ]}`, true},
	}

	for _, tt := range tests {
		var r Response
		require.NoError(t, json.Unmarshal([]byte(tt.body), &r))
		assert.Equal(t, tt.want, r.HasData(), tt.body)
	}
}

func TestResponseLoginFields(t *testing.T) {
	var r Response
	body := `{"success":true,"token":"abc","user":{"id":7,"username":"a","membership_level":"vip"}}`
	require.NoError(t, json.Unmarshal([]byte(body), &r))

	assert.Equal(t, "abc", r.Token)
	require.NotNil(t, r.User)
	assert.Equal(t, "a", r.User.Username)
	assert.EqualValues(t, "vip", r.User.MembershipLevel)
}

func TestResponseHasDataRawWhitespace(t *testing.T) {
	for _, raw := range []string{" ", "\tnull\n", " [ \n ] "} {
		r := Response{Data: json.RawMessage(raw)}
		assert.False(t, r.HasData(), "%q", raw)
	}
}
