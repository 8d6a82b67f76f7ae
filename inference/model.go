package inference

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	ort "github.com/yalue/onnxruntime_go"
)

// Fallback spatial size used when the model's declared input shape cannot be
// read. A fixed process-wide constant: if it mismatches the loaded model the
// warning logged at startup is the only trace, so keep an eye on it.
const defaultImageSize = 224

// Metadata is the optional sidecar file shipped next to the model. It only
// declares the pixel scaling convention the model was trained with;
// "imagenet" (the default) applies the caffe-style channel means, anything
// else selects plain [0,1] scaling.
type Metadata struct {
	Preprocessing string `json:"preprocessing"`
}

// Model wraps a single ONNX session shared by all requests. Sessions are safe
// for concurrent Run calls; input and output tensors are per-call.
type Model struct {
	session    *ort.DynamicAdvancedSession
	inputName  string
	outputName string
	height     int
	width      int
	imagenet   bool
}

// Load initializes the ONNX runtime and opens the model. The input spatial
// size is discovered from the model's declared input shape; when that shape
// is unavailable or malformed the 224×224 default is used and a warning is
// logged, since a mismatch corrupts predictions silently.
func Load(modelPath, metadataPath string) (*Model, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect model: %w", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, fmt.Errorf("model declares no inputs or outputs")
	}

	height, width, ok := targetSize(inputs[0].Dimensions)
	if !ok {
		height, width = defaultImageSize, defaultImageSize
		log.Printf("WARNING: model input shape %v is unreadable, assuming %dx%d",
			inputs[0].Dimensions, height, width)
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{inputs[0].Name}, []string{outputs[0].Name}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Model{
		session:    session,
		inputName:  inputs[0].Name,
		outputName: outputs[0].Name,
		height:     height,
		width:      width,
		imagenet:   loadPreprocessing(metadataPath),
	}, nil
}

// targetSize extracts H and W from an NHWC input shape. Dynamic dimensions
// (reported as values <= 0) count as malformed.
func targetSize(dims ort.Shape) (int, int, bool) {
	if len(dims) < 3 {
		return 0, 0, false
	}
	h, w := dims[1], dims[2]
	if h <= 0 || w <= 0 {
		return 0, 0, false
	}
	return int(h), int(w), true
}

func loadPreprocessing(metadataPath string) bool {
	raw, err := os.ReadFile(metadataPath)
	if err != nil {
		return true
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		log.Printf("WARNING: failed to parse model metadata: %v", err)
		return true
	}
	return meta.Preprocessing == "" || meta.Preprocessing == "imagenet"
}

// TargetSize reports the spatial dimensions the model expects.
func (m *Model) TargetSize() (int, int) { return m.height, m.width }

// ImageNet reports whether inputs use the caffe-convention channel means.
func (m *Model) ImageNet() bool { return m.imagenet }

// Run executes one inference over a [1,H,W,3] tensor and returns the raw
// output scores together with their shape.
func (m *Model) Run(pixels []float32) ([]float32, []int64, error) {
	input, err := ort.NewTensor(ort.NewShape(1, int64(m.height), int64(m.width), 3), pixels)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	if err := m.session.Run([]ort.Value{input}, outputs); err != nil {
		return nil, nil, fmt.Errorf("inference failed: %w", err)
	}

	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		outputs[0].Destroy()
		return nil, nil, fmt.Errorf("unexpected output tensor type")
	}
	defer out.Destroy()

	scores := make([]float32, len(out.GetData()))
	copy(scores, out.GetData())
	shape := make([]int64, len(out.GetShape()))
	copy(shape, out.GetShape())
	return scores, shape, nil
}

// Close releases the session and the runtime environment.
func (m *Model) Close() {
	if m.session != nil {
		m.session.Destroy()
	}
	ort.DestroyEnvironment()
}
