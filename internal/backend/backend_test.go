package backend

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testToken = "ey.test.access-token"

func testServer(status int, payload []byte) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write(payload)
	}))
}

func testResponse(status int, hdr http.Header, body string) *http.Response {
	if hdr == nil {
		hdr = make(http.Header)
	}
	return &http.Response{
		StatusCode: status,
		Header:     hdr,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNewWithClient(t *testing.T) {
	t.Run("empty token is rejected", func(t *testing.T) {
		_, err := NewWithClient("", http.DefaultClient)
		assert.Error(t, err)
	})
	t.Run("defaults", func(t *testing.T) {
		cl, err := NewWithClient(testToken, http.DefaultClient)
		assert.NoError(t, err)
		assert.Equal(t, defAPIPath, cl.apiPath)
		assert.Equal(t, testToken, cl.token)
		assert.Same(t, http.DefaultClient, cl.Raw())
	})
	t.Run("options are applied", func(t *testing.T) {
		hcl := &http.Client{}
		cl, err := NewWithClient(testToken, http.DefaultClient,
			OptionAPIURL("http://localhost:8080/api/"),
			OptionHTTPClient(hcl),
		)
		assert.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api", cl.apiPath)
		assert.Same(t, hcl, cl.Raw())
	})
}

func Test_checkStatus(t *testing.T) {
	type args struct {
		resp *http.Response
	}
	tests := []struct {
		name    string
		args    args
		wantErr error
	}{
		{
			name:    "ok",
			args:    args{testResponse(http.StatusOK, nil, `{"models":[]}`)},
			wantErr: nil,
		},
		{
			name:    "no content is a success",
			args:    args{testResponse(http.StatusNoContent, nil, "")},
			wantErr: nil,
		},
		{
			name: "rate limited with retry-after",
			args: args{testResponse(
				http.StatusTooManyRequests,
				http.Header{"Retry-After": []string{"30"}},
				`{"detail":"rate limited"}`,
			)},
			wantErr: &APIError{
				StatusCode: http.StatusTooManyRequests,
				RetryAfter: 30 * time.Second,
				Detail:     "rate limited",
			},
		},
		{
			name: "garbage retry-after is ignored",
			args: args{testResponse(
				http.StatusTooManyRequests,
				http.Header{"Retry-After": []string{"soon"}},
				"",
			)},
			wantErr: &APIError{StatusCode: http.StatusTooManyRequests},
		},
		{
			name: "server error with plain body",
			args: args{testResponse(http.StatusBadGateway, nil, "Bad Gateway\n")},
			wantErr: &APIError{
				StatusCode: http.StatusBadGateway,
				Detail:     "Bad Gateway",
			},
		},
		{
			name:    "error without a body",
			args:    args{testResponse(http.StatusNotFound, nil, "")},
			wantErr: &APIError{StatusCode: http.StatusNotFound},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.args.resp)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func Test_errDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "string detail",
			body: `{"detail":"Too many requests in 1 hour. Try again later."}`,
			want: "Too many requests in 1 hour. Try again later.",
		},
		{
			name: "object detail",
			body: `{"detail":{"message":"The message you submitted was too long","code":"message_length_exceeds_limit"}}`,
			want: "The message you submitted was too long",
		},
		{
			name: "raw fallback",
			body: "<html>nope</html>\n",
			want: "<html>nope</html>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errDetail([]byte(tt.body)))
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	t.Run("with detail", func(t *testing.T) {
		e := &APIError{StatusCode: http.StatusTooManyRequests, Detail: "slow down"}
		assert.Equal(t, "server error: Too Many Requests (429): slow down", e.Error())
	})
	t.Run("without detail", func(t *testing.T) {
		e := &APIError{StatusCode: http.StatusBadGateway}
		assert.Equal(t, "server error: Bad Gateway (502)", e.Error())
	})
}
