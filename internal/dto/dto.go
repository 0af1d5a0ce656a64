package dto

import (
	"bytes"
	"encoding/json"
	"storefront-client/internal/model"
)

// Response is the envelope every storefront endpoint answers with.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`

	// login answers with token and user beside data
	Token string             `json:"token,omitempty"`
	User  *model.UserProfile `json:"user,omitempty"`

	// order creation may answer with only the new id
	OrderID int64 `json:"order_id,omitempty"`
}

// HasData reports whether data is present and not an empty list or null.
func (r *Response) HasData() bool {
	data := bytes.TrimSpace(r.Data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return false
	case data[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err == nil {
			return len(items) > 0
		}
	}
	return true
}

func (r *Response) DecodeData(v any) error {
	return json.Unmarshal(r.Data, v)
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateOrderRequest struct {
	ContentID int64 `json:"content_id"`
}
