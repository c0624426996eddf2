package urlnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "embedded public url",
			in:   "https://www.tippmixpro.hu/i/foo/all",
			want: "https://sports2.tippmixpro.hu/foo/all",
		},
		{
			name: "legacy public url",
			in:   "https://www.tippmixpro.hu/e/sportfogadas/labdarugas/all/",
			want: "https://sports2.tippmixpro.hu/sportfogadas/labdarugas/all/",
		},
		{
			name: "bare public host",
			in:   "https://tippmixpro.hu/i/foo/all",
			want: "https://sports2.tippmixpro.hu/foo/all",
		},
		{
			name: "public host without markers",
			in:   "https://www.tippmixpro.hu/foo/all",
			want: "https://sports2.tippmixpro.hu/foo/all",
		},
		{
			name: "query kept",
			in:   "https://www.tippmixpro.hu/i/foo/all?lang=hu",
			want: "https://sports2.tippmixpro.hu/foo/all?lang=hu",
		},
		{
			name: "encoded slash kept",
			in:   "https://www.tippmixpro.hu/i/foo%2Fbar/all",
			want: "https://sports2.tippmixpro.hu/foo%2Fbar/all",
		},
		{
			name: "encoded accent kept",
			in:   "https://www.tippmixpro.hu/e/labdar%C3%BAg%C3%A1s/all",
			want: "https://sports2.tippmixpro.hu/labdar%C3%BAg%C3%A1s/all",
		},
		{
			name: "other host untouched",
			in:   "https://example.com/i/foo/all",
			want: "https://example.com/i/foo/all",
		},
		{
			name: "unparseable untouched",
			in:   "://bad url%%",
			want: "://bad url%%",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"https://www.tippmixpro.hu/i/foo/all",
		"https://sports2.tippmixpro.hu/foo/all",
		"https://tippmixpro.hu/e/bar/all/",
		"https://www.tippmixpro.hu/i/foo%2Fbar/all",
		"https://example.com/x",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestIsPublic(t *testing.T) {
	assert.True(t, IsPublic("www.tippmixpro.hu"))
	assert.True(t, IsPublic("TippmixPro.hu"))
	assert.False(t, IsPublic(BackendHost))
}
