package resumatch

import "github.com/kailas-cloud/resumatch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput           = domain.ErrInvalidInput
	ErrVectorLengthMismatch   = domain.ErrVectorLengthMismatch
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrModelNotLoaded         = domain.ErrModelNotLoaded
)
