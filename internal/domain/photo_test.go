package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaceListValueNilIsSQLNull(t *testing.T) {
	var faces FaceList

	value, err := faces.Value()
	require.NoError(t, err)
	assert.Nil(t, value, "неаннотированное фото хранит NULL, а не пустой массив")
}

func TestFaceListScanRoundTrip(t *testing.T) {
	faces := FaceList{{
		Age:    AgeRange{Low: 25, High: 32},
		Gender: Gender{Value: "female", Probability: 0.97},
		Box:    BoundingBox{Probability: 0.99, XMin: 60, YMin: 70, XMax: 180, YMax: 210},
	}}

	value, err := faces.Value()
	require.NoError(t, err)

	var scanned FaceList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, faces, scanned)
}

func TestFaceListScanNull(t *testing.T) {
	scanned := FaceList{{}}
	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
}
