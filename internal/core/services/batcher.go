package services

import "github.com/custodia-labs/transync-cli/internal/core/domain"

// SplitIntoBatches splits a translations payload into contiguous batches of
// at most batchSize entries. Only auto-merge allows splitting, since other
// merge types replace the server state with each request. Every batch
// shares the parent's revision, extensions and links.
func SplitIntoBatches(tr *domain.TranslationsResource, batchSize int, merge domain.MergeType) []*domain.TranslationsResource {
	size := tr.Size()
	if merge != domain.MergeAuto || batchSize <= 0 || size <= batchSize {
		return []*domain.TranslationsResource{tr}
	}

	count := (size + batchSize - 1) / batchSize
	batches := make([]*domain.TranslationsResource, 0, count)
	for from := 0; from < size; from += batchSize {
		to := min(from+batchSize, size)
		batches = append(batches, &domain.TranslationsResource{
			Revision:   tr.Revision,
			Extensions: tr.Extensions,
			Links:      tr.Links,
			Targets:    tr.Targets[from:to:to],
		})
	}
	return batches
}

// batchSizes returns the entry count of each batch.
func batchSizes(batches []*domain.TranslationsResource) []int {
	sizes := make([]int, len(batches))
	for i, b := range batches {
		sizes[i] = b.Size()
	}
	return sizes
}
