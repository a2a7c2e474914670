package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alfagnish/itemsd/internal/items"
	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	testCases := []struct {
		in   string
		want int
	}{
		{"12", 12},
		{"007", 7},
		{"+3", 3},
		{"-1", -1},
		{" 4", 4},
		{"1.5", 1},
		{"1abc", 1},
		{"3e1", 3},
		{"abc", 0},
		{"", 0},
		{"-", 0},
		{"99999999999999999999999", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, parseID(tc.in))
		})
	}
}

func TestDecodeBody(t *testing.T) {
	decode := func(body string) (items.Draft, error) {
		var d items.Draft
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := decodeBody(req, &d)
		return d, err
	}

	t.Run("will decode a single JSON object", func(t *testing.T) {
		d, err := decode(`{"title":"a","completed":true}` + "\n")
		assert.NoError(t, err)
		assert.Equal(t, items.Draft{Title: "a", Completed: true}, d)
	})

	t.Run("will treat an empty body as an empty object", func(t *testing.T) {
		d, err := decode("")
		assert.NoError(t, err)
		assert.Equal(t, items.Draft{}, d)
	})

	t.Run("will return an error", func(t *testing.T) {
		for _, body := range []string{
			`{"title":"a"} garbage`,
			`{"title":"a"}{"title":"b"}`,
			`{"title":`,
			`{"completed":"yes"}`,
		} {
			_, err := decode(body)
			assert.Error(t, err, body)
		}
	})
}
