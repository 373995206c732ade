package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
)

func TestLookup_UnbuildableRequestIsUnknown(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	// a control character makes the URL unparsable
	baseURL := srv.URL + "/\x7f"
	colors := newTestColorService(baseURL, time.Second)
	geocoder := newTestGeocoder(baseURL, time.Second)

	tests := []struct {
		name string
		run  func() (bool, lookup.ErrorKind, *lookup.Error)
	}{
		{
			name: "color name",
			run: func() (bool, lookup.ErrorKind, *lookup.Error) {
				r := colors.FetchColorName(context.Background(), "#059669")
				return r.Success, r.ErrorType, r.Error
			},
		},
		{
			name: "geocode",
			run: func() (bool, lookup.ErrorKind, *lookup.Error) {
				r := geocoder.GeocodeAddress(context.Background(), "Warsaw")
				return r.Success, r.ErrorType, r.Error
			},
		},
		{
			name: "suggestions",
			run: func() (bool, lookup.ErrorKind, *lookup.Error) {
				r := geocoder.SuggestAddresses(context.Background(), "Warsaw")
				return r.Success, r.ErrorType, r.Error
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, kind, e := tt.run()
			assert.False(t, ok)
			assert.Equal(t, lookup.ErrUnknown, kind)
			require.NotNil(t, e)
			assert.Equal(t, lookup.CodeUnknown, e.Code)
			assert.Equal(t, lookup.NewLocalizer("en").Text(lookup.MsgUnknown), e.Message)
			assert.NotContains(t, e.Message, "control character", "transport detail leaked")
		})
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(&hits), "no request should reach the server")
}
