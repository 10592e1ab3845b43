package httpclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vale-lint/valecore/pkg/shared/config"
)

func boolPtr(v bool) *bool { return &v }

func TestApplyHttpClientConfig(t *testing.T) {
	tests := []struct {
		name string
		in   config.HttpClient
		want config.RestyHttpClientConfig
	}{
		{
			name: "absent tls settings keep verification on",
			in:   config.HttpClient{},
			want: config.RestyHttpClientConfig{InsecureSkipVerify: false},
		},
		{
			name: "verification disabled only when explicitly off",
			in:   config.HttpClient{TlsClientConfig: config.TlsClientConfig{Verify: boolPtr(false)}},
			want: config.RestyHttpClientConfig{InsecureSkipVerify: true},
		},
		{
			name: "explicit verify true",
			in:   config.HttpClient{TlsClientConfig: config.TlsClientConfig{Verify: boolPtr(true)}},
			want: config.RestyHttpClientConfig{InsecureSkipVerify: false},
		},
		{
			name: "debug and timeout pass through",
			in:   config.HttpClient{Debug: true, Timeout: 5 * time.Second},
			want: config.RestyHttpClientConfig{Debug: true, Timeout: 5 * time.Second},
		},
		{
			name: "proxy needs both host and port",
			in:   config.HttpClient{Proxy: config.Proxy{Host: "http://proxy.local", Port: "3128"}},
			want: config.RestyHttpClientConfig{Proxy: "http://proxy.local:3128"},
		},
		{
			name: "proxy host alone is ignored",
			in:   config.HttpClient{Proxy: config.Proxy{Host: "http://proxy.local"}},
			want: config.RestyHttpClientConfig{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, applyHttpClientConfig(&tc.in))
		})
	}
}

func TestInitializeRestyClient(t *testing.T) {
	cfg := &config.Config{
		HttpClient: config.HttpClient{Timeout: 2 * time.Second},
	}

	client := InitializeRestyClient(nil, cfg)
	assert.Equal(t, 2*time.Second, client.GetClient().Timeout)
	assert.Equal(t, 0, client.RetryCount)
}
