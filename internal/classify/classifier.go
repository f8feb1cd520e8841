package classify

// Deterministic stand-in for the rice-leaf disease model. The real model runs
// elsewhere; this boundary only has to produce stable, plausible results so
// the scan pipeline can be exercised end to end.

import (
	"hash/fnv"
	"path/filepath"
)

// Result is one classification outcome
type Result struct {
	DiseaseName     string
	Confidence      float64
	Recommendations string
}

type diseaseClass struct {
	name            string
	recommendations string
}

// class order mirrors the trained model's output layer
var diseaseClasses = []diseaseClass{
	{
		name:            "Bacterial Leaf Blight",
		recommendations: "Remove affected leaves and apply copper-based bactericide. Ensure good air circulation by proper spacing. Use resistant varieties in future plantings.",
	},
	{
		name:            "Healthy",
		recommendations: "Your rice plant appears to be healthy. Continue with your regular watering and fertilization schedule.",
	},
	{
		name:            "Leaf Blast",
		recommendations: "Apply fungicide containing tricyclazole or azoxystrobin as directed. Remove affected leaves and avoid excessive nitrogen.",
	},
	{
		name:            "Tungro Virus",
		recommendations: "Remove affected plants to prevent spread. Control leafhoppers with appropriate insecticides and consider resistant varieties.",
	},
}

// Classifier assigns a disease label to an uploaded image
type Classifier interface {
	Classify(imagePath string) Result
}

// MockClassifier derives a stable label and confidence from the image
// filename, so repeated scans of the same file agree.
type MockClassifier struct{}

// NewMockClassifier creates the mock classifier.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify picks a class by hashing the file base name.
func (m *MockClassifier) Classify(imagePath string) Result {
	h := fnv.New32a()
	h.Write([]byte(filepath.Base(imagePath)))
	sum := h.Sum32()

	class := diseaseClasses[sum%uint32(len(diseaseClasses))]
	// confidence in [65, 97): always above the acceptance threshold
	confidence := 65.0 + float64(sum%32)

	return Result{
		DiseaseName:     class.name,
		Confidence:      confidence,
		Recommendations: class.recommendations,
	}
}
