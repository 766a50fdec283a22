package faceapi

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/GoArmGo/AlbumApp/internal/config"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	cfg := &config.Config{}
	cfg.FaceAPI.BaseURL = "http://compreface.test"
	cfg.FaceAPI.APIKey = "test-api-key"
	return NewClient(cfg)
}

func TestDetectFaces(t *testing.T) {
	client := newTestClient()
	httpmock.ActivateNonDefault(client.httpClient)
	defer httpmock.DeactivateAndReset()

	var gotAPIKey string
	httpmock.RegisterResponder(http.MethodPost, "http://compreface.test/api/v1/detection/detect",
		func(req *http.Request) (*http.Response, error) {
			gotAPIKey = req.Header.Get("x-api-key")
			return httpmock.NewStringResponse(http.StatusOK, `{
				"result": [
					{
						"age": {"low": 25, "high": 32},
						"gender": {"value": "female", "probability": 0.97},
						"embedding": [0.1, 0.2],
						"box": {"probability": 0.99, "x_min": 60, "y_min": 70, "x_max": 180, "y_max": 210},
						"landmarks": [[10, 20], [30, 40]],
						"execution_time": {"age": 5.1, "gender": 4.2, "detector": 30.5, "calculator": 12.0}
					}
				]
			}`), nil
		})

	faces, err := client.DetectFaces(context.Background(), strings.NewReader("картинка"))
	require.NoError(t, err)

	require.Len(t, faces, 1)
	assert.Equal(t, "test-api-key", gotAPIKey)
	assert.Equal(t, 25, faces[0].Age.Low)
	assert.Equal(t, "female", faces[0].Gender.Value)
	assert.Equal(t, 60, faces[0].Box.XMin)
	assert.Equal(t, 180, faces[0].Box.XMax)
}

func TestDetectFacesEmptyResult(t *testing.T) {
	client := newTestClient()
	httpmock.ActivateNonDefault(client.httpClient)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, "http://compreface.test/api/v1/detection/detect",
		httpmock.NewStringResponder(http.StatusOK, `{"result": []}`))

	faces, err := client.DetectFaces(context.Background(), strings.NewReader("без лиц"))
	require.NoError(t, err)
	assert.Empty(t, faces)
}

func TestDetectFacesServerError(t *testing.T) {
	client := newTestClient()
	httpmock.ActivateNonDefault(client.httpClient)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, "http://compreface.test/api/v1/detection/detect",
		httpmock.NewStringResponder(http.StatusInternalServerError, `{"message": "boom"}`))

	_, err := client.DetectFaces(context.Background(), strings.NewReader("картинка"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
