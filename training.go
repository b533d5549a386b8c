package roi

import "fmt"

// FeatureSource supplies per-pixel feature vectors for classifier
// training, typically backed by the acquisition's channel intensities.
// Features is called with raster coordinates inside the query grid.
type FeatureSource interface {
	Features(x, y int) []float64
	NumFeatures() int
}

// Label describes one classifier class: the description shown to the
// user, the numeric value member pixels are tagged with, and the
// display colour. Sessions assign values by annotation order.
type Label struct {
	Description string
	Value       int
	Colour      Colour
}

// TrainingEntry pairs an annotation with the class label its member
// pixels contribute.
type TrainingEntry struct {
	Annotation *Annotation
	Label      int
}

// TrainingSet is labelled training data: one feature vector and one
// label per member pixel, in entry order then row-major pixel order.
type TrainingSet struct {
	Features [][]float64
	Labels   []int
}

// Len returns the number of samples.
func (ts *TrainingSet) Len() int {
	return len(ts.Labels)
}

// BuildTrainingSet runs a full-grid membership query per entry and
// pairs each member pixel's feature vector with the entry's label.
//
// When flipY is set, features are sampled at (x, Height-1-y): the
// annotation world is y-up while feature rasters are stored y-down,
// and the flip aligns the two.
func BuildTrainingSet(entries []TrainingEntry, q PixelQuery, src FeatureSource, flipY bool, opts ...QueryOption) (*TrainingSet, error) {
	set := &TrainingSet{}
	for _, entry := range entries {
		pixels, err := Membership(entry.Annotation.Snapshot(), q, q.FullRect(), opts...)
		if err != nil {
			return nil, fmt.Errorf("membership for %q: %w", entry.Annotation.Description, err)
		}
		for _, p := range pixels {
			sy := p.Y
			if flipY {
				sy = q.Height - 1 - p.Y
			}
			set.Features = append(set.Features, src.Features(p.X, sy))
			set.Labels = append(set.Labels, entry.Label)
		}
	}

	Logger().Info("training set built",
		"entries", len(entries),
		"samples", set.Len(),
		"features", src.NumFeatures())
	return set, nil
}
