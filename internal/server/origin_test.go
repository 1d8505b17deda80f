package server

import (
	"net/http/httptest"
	"testing"

	"github.com/chandrashekhar-patil/Chat-App/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOrigins(t *testing.T) {
	req := require.New(t)

	got, allowAll := normalizeOrigins([]string{" HTTPS://Chat.Example.com ", "", "not a url", "http://localhost:5173"}, testutil.Logger())
	req.False(allowAll)
	req.Equal([]string{"https://chat.example.com", "http://localhost:5173"}, got)

	_, allowAll = normalizeOrigins([]string{"*"}, testutil.Logger())
	req.True(allowAll)
}

func TestOriginPolicy(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		header  string
		want    bool
	}{
		{name: "no header", origins: []string{"https://chat.example.com"}, header: "", want: true},
		{name: "listed", origins: []string{"https://chat.example.com"}, header: "https://chat.example.com", want: true},
		{name: "case insensitive", origins: []string{"https://chat.example.com"}, header: "https://CHAT.example.com", want: true},
		{name: "other host", origins: []string{"https://chat.example.com"}, header: "https://evil.example.com", want: false},
		{name: "other scheme", origins: []string{"https://chat.example.com"}, header: "http://chat.example.com", want: false},
		{name: "garbage", origins: []string{"https://chat.example.com"}, header: "::", want: false},
		{name: "wildcard", origins: []string{"*"}, header: "https://anything.example", want: true},
		{name: "nothing configured", origins: nil, header: "https://chat.example.com", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newOriginPolicy(tt.origins, testutil.Logger())
			r := httptest.NewRequest("GET", "/ws", nil)
			if tt.header != "" {
				r.Header.Set("Origin", tt.header)
			}
			require.Equal(t, tt.want, p.checkOrigin(r))
		})
	}
}
