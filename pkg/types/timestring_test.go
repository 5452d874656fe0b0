package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr error
	}{
		{name: "hh:mm", input: "09:30", want: "09:30"},
		{name: "postgres time with seconds", input: "18:00:00", want: "18:00"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "single digit hour", input: "9:30", wantErr: ErrInvalidTimeFormat},
		{name: "letters", input: "ab:cd", wantErr: ErrInvalidTimeFormat},
		{name: "plus sign", input: "+9:00", wantErr: ErrInvalidTimeFormat},
		{name: "minus sign", input: "-1:00", wantErr: ErrInvalidTimeFormat},
		{name: "signed minutes", input: "09:+5", wantErr: ErrInvalidTimeFormat},
		{name: "malformed seconds", input: "09:00:x1", wantErr: ErrInvalidTimeFormat},
		{name: "empty", input: "", wantErr: ErrInvalidTimeFormat},
		{name: "minutes overflow", input: "10:60", wantErr: ErrTimeOutOfRange},
		{name: "hours overflow", input: "25:00", wantErr: ErrTimeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Arithmetic(t *testing.T) {
	start := TimeString("10:45")

	end, err := start.AddMinutes(75)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), end)

	assert.True(t, start.IsBefore(end))
	assert.True(t, end.IsAfter(start))
	assert.False(t, start.IsBefore(start))

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 13, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("13:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("07:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "07:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("7am").Value()
	assert.Error(t, err)
}
