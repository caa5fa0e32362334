package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/recgo/blobstore"
	"github.com/hupe1980/recgo/index"
)

// ArtifactNames identifies the three catalog artifacts inside a blob store.
// Names may carry a compression extension (.zst, .lz4).
type ArtifactNames struct {
	Metadata           string
	ProductEmbeddings  string
	CombinedEmbeddings string
}

// DefaultArtifactNames matches the offline pipeline's output layout.
var DefaultArtifactNames = ArtifactNames{
	Metadata:           "metadata.json",
	ProductEmbeddings:  "product_embeddings.bin",
	CombinedEmbeddings: "combined_embeddings.bin",
}

// Snapshot is a fully loaded and validated catalog: the metadata store and
// the two vector indices sharing its row order.
type Snapshot struct {
	Store         *Store
	ProductIndex  *index.Flat
	CombinedIndex *index.Flat
}

// metadataFile is the JSON layout of the metadata artifact: parallel
// per-product arrays in row order.
type metadataFile struct {
	ProductNames  []string   `json:"product_names"`
	ProductImages []string   `json:"product_images"`
	Ratings       []float64  `json:"ratings"`
	ReviewTitles  [][]string `json:"review_titles"`
	ReviewTexts   [][]string `json:"review_texts"`
	Descriptions  []string   `json:"descriptions"`
	Features      []string   `json:"features"`
}

// Load reads and validates the catalog artifacts.
//
// Any structural mismatch (ragged metadata arrays, row-count disagreement
// between metadata and either matrix) is fatal: proceeding with misaligned
// rows would silently corrupt every recommendation.
func Load(ctx context.Context, bs blobstore.BlobStore, names ArtifactNames) (*Snapshot, error) {
	meta, err := loadMetadata(ctx, bs, names.Metadata)
	if err != nil {
		return nil, err
	}

	productMat, err := loadMatrix(ctx, bs, names.ProductEmbeddings)
	if err != nil {
		return nil, err
	}
	combinedMat, err := loadMatrix(ctx, bs, names.CombinedEmbeddings)
	if err != nil {
		return nil, err
	}

	rows := len(meta.ProductNames)
	if productMat.Rows != rows {
		return nil, fmt.Errorf("catalog: product embeddings have %d rows, metadata has %d", productMat.Rows, rows)
	}
	if combinedMat.Rows != rows {
		return nil, fmt.Errorf("catalog: combined embeddings have %d rows, metadata has %d", combinedMat.Rows, rows)
	}

	store, err := storeFromMetadata(meta)
	if err != nil {
		return nil, err
	}

	productIdx, err := index.NewFromFlat(productMat.Dim, productMat.Data)
	if err != nil {
		return nil, fmt.Errorf("catalog: build product index: %w", err)
	}
	combinedIdx, err := index.NewFromFlat(combinedMat.Dim, combinedMat.Data)
	if err != nil {
		return nil, fmt.Errorf("catalog: build combined index: %w", err)
	}

	return &Snapshot{
		Store:         store,
		ProductIndex:  productIdx,
		CombinedIndex: combinedIdx,
	}, nil
}

func loadMetadata(ctx context.Context, bs blobstore.BlobStore, name string) (*metadataFile, error) {
	rc, err := blobstore.OpenDecoded(ctx, bs, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: open metadata artifact %q: %w", name, err)
	}
	defer rc.Close()

	var meta metadataFile
	if err := json.NewDecoder(rc).Decode(&meta); err != nil {
		return nil, fmt.Errorf("catalog: decode metadata artifact %q: %w", name, err)
	}

	rows := len(meta.ProductNames)
	for field, n := range map[string]int{
		"product_images": len(meta.ProductImages),
		"ratings":        len(meta.Ratings),
		"review_titles":  len(meta.ReviewTitles),
		"review_texts":   len(meta.ReviewTexts),
		"descriptions":   len(meta.Descriptions),
		"features":       len(meta.Features),
	} {
		if n != rows {
			return nil, fmt.Errorf("catalog: metadata field %s has %d rows, product_names has %d", field, n, rows)
		}
	}

	return &meta, nil
}

func loadMatrix(ctx context.Context, bs blobstore.BlobStore, name string) (*Matrix, error) {
	rc, err := blobstore.OpenDecoded(ctx, bs, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: open embedding artifact %q: %w", name, err)
	}
	defer rc.Close()

	mat, err := ReadMatrix(rc)
	if err != nil {
		return nil, fmt.Errorf("catalog: embedding artifact %q: %w", name, err)
	}
	return mat, nil
}

func storeFromMetadata(meta *metadataFile) (*Store, error) {
	products := make([]Product, len(meta.ProductNames))
	for i := range meta.ProductNames {
		products[i] = Product{
			Name:         meta.ProductNames[i],
			ImageRef:     meta.ProductImages[i],
			Rating:       meta.Ratings[i],
			ReviewTitles: meta.ReviewTitles[i],
			ReviewTexts:  meta.ReviewTexts[i],
			Description:  meta.Descriptions[i],
			Features:     meta.Features[i],
		}
	}
	return NewStore(products)
}

// Stats summarizes a loaded snapshot.
type Stats struct {
	TotalProducts          int
	IndexDimension         int
	CombinedIndexDimension int
}

// Stats returns basic statistics about the snapshot.
func (s *Snapshot) Stats() Stats {
	return Stats{
		TotalProducts:          s.Store.Len(),
		IndexDimension:         s.ProductIndex.Dimension(),
		CombinedIndexDimension: s.CombinedIndex.Dimension(),
	}
}
