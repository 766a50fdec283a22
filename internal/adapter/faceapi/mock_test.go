package faceapi

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockDetectorShape(t *testing.T) {
	detector := NewMockDetectorWithSeed(1)

	for i := 0; i < 20; i++ {
		faces, err := detector.DetectFaces(context.Background(), strings.NewReader("не-изображение"))
		require.NoError(t, err)

		require.GreaterOrEqual(t, len(faces), 1)
		require.LessOrEqual(t, len(faces), 3)

		for _, face := range faces {
			assert.Len(t, face.Embedding, 512)
			assert.Len(t, face.Landmarks, 68)

			assert.Less(t, face.Box.XMin, face.Box.XMax)
			assert.Less(t, face.Box.YMin, face.Box.YMax)
			assert.GreaterOrEqual(t, face.Box.Probability, 0.8)

			assert.Contains(t, []string{"male", "female"}, face.Gender.Value)
			assert.GreaterOrEqual(t, face.Gender.Probability, 0.7)
			assert.LessOrEqual(t, face.Age.Low, face.Age.High)
		}
	}
}

func TestMockDetectorDeterministicWithSeed(t *testing.T) {
	first, err := NewMockDetectorWithSeed(7).DetectFaces(context.Background(), strings.NewReader("a"))
	require.NoError(t, err)

	second, err := NewMockDetectorWithSeed(7).DetectFaces(context.Background(), strings.NewReader("b"))
	require.NoError(t, err)

	// Содержимое изображения игнорируется, решает только seed
	assert.Equal(t, first, second)
}

func TestMockDetectorConcurrentUploads(t *testing.T) {
	// Один экземпляр детектора обслуживает параллельные загрузки
	detector := NewMockDetectorWithSeed(42)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				faces, err := detector.DetectFaces(context.Background(), strings.NewReader("кадр"))
				assert.NoError(t, err)
				assert.GreaterOrEqual(t, len(faces), 1)
				assert.LessOrEqual(t, len(faces), 3)
			}
		}()
	}
	wg.Wait()
}

func TestMockDetectorRespectsContext(t *testing.T) {
	detector := NewMockDetector() // вариант с задержкой

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := detector.DetectFaces(ctx, strings.NewReader("a"))
	assert.ErrorIs(t, err, context.Canceled)
}
