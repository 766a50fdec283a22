package faceapi

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/GoArmGo/AlbumApp/internal/domain"
)

// MockDetector — заглушка детектора лиц для разработки без CompreFace.
// Всегда успешна: после искусственной задержки возвращает 1–3 синтетических
// дескриптора со случайной геометрией и демографией.
// Один экземпляр обслуживает параллельные загрузки, поэтому доступ
// к генератору сериализуется: rand.Rand не потокобезопасен.
type MockDetector struct {
	mu    sync.Mutex
	rng   *rand.Rand
	delay time.Duration
}

// NewMockDetector создает заглушку с задержкой по умолчанию (500 мс, как в прототипе)
func NewMockDetector() *MockDetector {
	return &MockDetector{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		delay: 500 * time.Millisecond,
	}
}

// NewMockDetectorWithSeed создает детерминированную заглушку без задержки — для тестов
func NewMockDetectorWithSeed(seed int64) *MockDetector {
	return &MockDetector{
		rng:   rand.New(rand.NewSource(seed)),
		delay: 0,
	}
}

// DetectFaces реализует ports.FaceDetector.
// Изображение не анализируется, содержимое игнорируется.
func (d *MockDetector) DetectFaces(ctx context.Context, image io.Reader) (domain.FaceList, error) {
	if d.delay > 0 {
		select {
		case <-time.After(d.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	count := d.rng.Intn(3) + 1 // 1-3 лица

	faces := make(domain.FaceList, 0, count)
	for i := 0; i < count; i++ {
		faces = append(faces, d.randomFace())
	}
	return faces, nil
}

func (d *MockDetector) randomFace() domain.DetectedFace {
	embedding := make([]float64, 512)
	for i := range embedding {
		embedding[i] = d.rng.Float64()
	}

	landmarks := make([][]float64, 68)
	for i := range landmarks {
		landmarks[i] = []float64{d.rng.Float64() * 200, d.rng.Float64() * 200}
	}

	gender := "female"
	if d.rng.Float64() > 0.5 {
		gender = "male"
	}

	// Диапазоны констант повторяют прототип: x_min в [50,100), x_max в [150,250),
	// так что инвариант x_min < x_max (и аналогично по y) выполняется всегда
	return domain.DetectedFace{
		Age: domain.AgeRange{
			Low:  d.rng.Intn(10) + 20,
			High: d.rng.Intn(20) + 30,
		},
		Gender: domain.Gender{
			Value:       gender,
			Probability: d.rng.Float64()*0.3 + 0.7,
		},
		Embedding: embedding,
		Box: domain.BoundingBox{
			Probability: d.rng.Float64()*0.2 + 0.8,
			XMin:        d.rng.Intn(50) + 50,
			YMin:        d.rng.Intn(50) + 50,
			XMax:        d.rng.Intn(100) + 150,
			YMax:        d.rng.Intn(100) + 150,
		},
		Landmarks: landmarks,
		ExecutionTime: domain.ExecutionTime{
			Age:        d.rng.Float64() * 10,
			Gender:     d.rng.Float64() * 10,
			Detector:   d.rng.Float64() * 50,
			Calculator: d.rng.Float64() * 20,
		},
	}
}
