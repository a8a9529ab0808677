package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "user", want: RoleUser},
		{in: "admin", want: RoleAdmin},
		{in: "", wantErr: true},
		{in: "ADMIN", wantErr: true},
		{in: "Admin", wantErr: true},
		{in: "root", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownRole)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVideoType_DistinctVariants(t *testing.T) {
	liked, err := ParseVideoType("liked")
	require.NoError(t, err)
	watched, err := ParseVideoType("watched")
	require.NoError(t, err)

	assert.Equal(t, VideoLiked, liked)
	assert.Equal(t, VideoWatched, watched)
	assert.NotEqual(t, liked, watched)

	_, err = ParseVideoType("favourite")
	assert.ErrorIs(t, err, ErrUnknownVideoType)
}
