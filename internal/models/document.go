package models

// EmbeddingDimension is the vector length every collection is provisioned with.
const EmbeddingDimension = 1536

type SimilarityMetric string

const (
	DotProduct SimilarityMetric = "dot_product"
	Cosine     SimilarityMetric = "cosine"
	Euclidean  SimilarityMetric = "euclidean"
)

// Valid reports whether m is one of the metrics a collection accepts.
func (m SimilarityMetric) Valid() bool {
	switch m {
	case DotProduct, Cosine, Euclidean:
		return true
	}
	return false
}

// Document is a scraped page with its markup already stripped.
type Document struct {
	URL     string
	Content string
}

type ProcessedDocument struct {
	Document
	Chunks []string
}

// CollectionSpec describes the collection the loader writes into.
type CollectionSpec struct {
	Name      string
	Dimension int
	Metric    SimilarityMetric
}

// Record is the persisted unit: one chunk and its embedding.
type Record struct {
	Vector []float32
	Text   string
}
