package platform

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound is returned when a product id or url does not match any record.
	ErrProductNotFound = errors.New("product not found")
	// ErrSessionNotFound is returned when a chat session id does not match any record.
	ErrSessionNotFound = errors.New("chat session not found")
	// ErrNotFailed is returned when retry is requested for a product which is not in failed state.
	ErrNotFailed = errors.New("product is not in failed state")
	// ErrNotCompleted is returned when a question is asked against a product which is not completed yet.
	ErrNotCompleted = errors.New("product data is not ready yet")
)

// Error kinds of the pipeline and Q&A paths. Kinds wrap causes, so
// errors.Is(err, KindScrape) selects a whole class of failures.
var (
	// KindScrape marks navigation/timeout/missing-critical-element failures.
	KindScrape = errors.New("scrape error")
	// KindEmbedding marks embedding provider failures, including the empty-input precondition.
	KindEmbedding = errors.New("embedding error")
	// KindVectorStore marks vector store upsert/query/delete failures.
	KindVectorStore = errors.New("vector store error")
	// KindLLM marks answer generation failures.
	KindLLM = errors.New("llm error")
	// KindValidation marks bad input at the facade.
	KindValidation = errors.New("validation error")
)

// WrapError attaches kind to err so both the kind and the cause
// survive errors.Is checks.
func WrapError(kind, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.err)
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.err}
}
