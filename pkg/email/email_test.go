package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "  Ana@Example.COM ", want: "ana@example.com"},
		{in: "ana.perez+spa@clinic.es", want: "ana.perez+spa@clinic.es"},
		{in: "", wantErr: true},
		{in: "ana", wantErr: true},
		{in: "ana@localhost", wantErr: true},
		{in: "Ana <ana@example.com>", wantErr: true},
		{in: "a@b.c, d@e.f", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalid, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
