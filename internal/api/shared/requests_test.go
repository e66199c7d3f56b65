package shared

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
		errIs   error
	}{
		{name: "valid json", body: `{"name":"test","age":30}`},
		{name: "invalid json", body: `{"name":"test",}`, wantErr: true},
		{name: "empty body", body: "", wantErr: true, errIs: ErrEmptyBody},
		{name: "unknown field", body: `{"name":"x","extra":1}`, wantErr: true},
		{name: "trailing data", body: `{"name":"x"}{"name":"y"}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(tc.body))

			var got payload
			err := DecodeJSON(req, &got)
			if tc.wantErr {
				require.Error(t, err)
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, payload{Name: "test", Age: 30}, got)
		})
	}
}

type errorReader struct{}

func (errorReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestDecodeJSONReadError(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodPost, "/test", errorReader{})
	var target struct{}
	assert.ErrorIs(t, DecodeJSON(req, &target), io.ErrUnexpectedEOF)
}

type tagged struct {
	Count int `validate:"gte=0"`
}

type selfValidating struct {
	OK bool
}

func (s *selfValidating) Validate() error {
	if !s.OK {
		return errors.New("not ok")
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(&tagged{Count: 1}))
	assert.Error(t, ValidateRequest(&tagged{Count: -1}))
	assert.NoError(t, ValidateRequest(&selfValidating{OK: true}))
	assert.EqualError(t, ValidateRequest(&selfValidating{}), "not ok")
}
