package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dmitrijs2005/hikelog/internal/client/gateway"
	"github.com/dmitrijs2005/hikelog/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "application",
			err:  &gateway.Error{Kind: gateway.KindApplication, Status: 404, Message: "Hike not found"},
			want: "error: Hike not found\n",
		},
		{
			name: "fields",
			err: &gateway.Error{Kind: gateway.KindValidation, Fields: []gateway.FieldError{
				{Field: "name", Msg: "Name is required"},
				{Msg: "Something else"},
			}},
			want: "Please correct the following:\n  - name: Name is required\n  - Something else\n",
		},
		{
			name: "plain error",
			err:  errors.New("disk full"),
			want: "error: disk full\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			renderError(&out, tt.err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("id", []string{"42"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, args := range [][]string{nil, {"1", "2"}, {"x"}, {"0"}, {"-3"}} {
		_, err := parseID("id", args)
		require.ErrorIs(t, err, gateway.ErrValidation, "args %v", args)
		e, _ := gateway.AsError(err)
		assert.Equal(t, "id", e.Fields[0].Field)
	}
}

func TestParseYesNo(t *testing.T) {
	v, err := parseYesNo("p", "", true)
	require.NoError(t, err)
	assert.True(t, v)

	v, err = parseYesNo("p", "No", true)
	require.NoError(t, err)
	assert.False(t, v)

	_, err = parseYesNo("p", "maybe", false)
	assert.ErrorIs(t, err, gateway.ErrValidation)
}

func TestPrintHikeList(t *testing.T) {
	var out bytes.Buffer
	printHikeList(&out, &models.HikeList{})
	assert.Equal(t, "No hikes found.\n", out.String())

	out.Reset()
	printHikeList(&out, &models.HikeList{Count: 1, Hikes: []models.Hike{
		{ID: 3, Name: "Ridge", Location: "Alps", Date: "2024-06-01", Length: 12.5, Difficulty: "hard"},
	}})
	assert.Contains(t, out.String(), "#3")
	assert.Contains(t, out.String(), "12.5 km")
	assert.Contains(t, out.String(), "1 hike(s)")
}

func TestPrintObservation(t *testing.T) {
	lat, lon := 46.5, 7.25
	var out bytes.Buffer
	printObservation(&out, &models.Observation{ID: 1, HikeID: 2, Observation: "Ibex", Latitude: &lat, Longitude: &lon})
	assert.Contains(t, out.String(), "#1 (hike #2) Ibex")
	assert.Contains(t, out.String(), "position: 46.5, 7.25")
}
