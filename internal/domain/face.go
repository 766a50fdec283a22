package domain

// DetectedFace — дескриптор одного найденного лица.
// Формат повторяет ответ детектора (CompreFace): рамка, демография,
// эмбеддинг, ключевые точки и тайминги по этапам пайплайна.
type DetectedFace struct {
	Age           AgeRange      `json:"age"`
	Gender        Gender        `json:"gender"`
	Embedding     []float64     `json:"embedding"`
	Box           BoundingBox   `json:"box"`
	Landmarks     [][]float64   `json:"landmarks"`
	ExecutionTime ExecutionTime `json:"execution_time"`
}

// AgeRange — оценка возраста в виде диапазона
type AgeRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Gender — оценка пола с вероятностью
type Gender struct {
	Value       string  `json:"value"`
	Probability float64 `json:"probability"`
}

// BoundingBox — рамка лица на изображении.
// Инвариант: XMin < XMax и YMin < YMax
type BoundingBox struct {
	Probability float64 `json:"probability"`
	XMin        int     `json:"x_min"`
	YMin        int     `json:"y_min"`
	XMax        int     `json:"x_max"`
	YMax        int     `json:"y_max"`
}

// ExecutionTime — время выполнения этапов детекции, мс
type ExecutionTime struct {
	Age        float64 `json:"age"`
	Gender     float64 `json:"gender"`
	Detector   float64 `json:"detector"`
	Calculator float64 `json:"calculator"`
}
