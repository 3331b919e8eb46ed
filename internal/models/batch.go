package models

import (
	"fmt"
	"strings"
)

// BatchOp is a bulk article transition
type BatchOp string

const (
	BatchDelete    BatchOp = "delete"
	BatchPublish   BatchOp = "publish"
	BatchUnpublish BatchOp = "unpublish"
)

// RequiredStatus is the per-row precondition of the operation
func (op BatchOp) RequiredStatus() ArticleStatus {
	if op == BatchUnpublish {
		return ArticlePublished
	}
	return ArticleDraft
}

// MaxSummaryErrors is how many row errors the summary spells out
const MaxSummaryErrors = 3

// BatchRequest is the body of the /article/batch/* endpoints
type BatchRequest struct {
	ArticleIDs []int64 `json:"article_ids"`
}

// BatchResult aggregates a batch run
type BatchResult struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}

// Record adds one row outcome
func (r *BatchResult) Record(err error) {
	if err == nil {
		r.SuccessCount++
		return
	}
	r.ErrorCount++
	r.Errors = append(r.Errors, err.Error())
}

// Summary lists the first MaxSummaryErrors messages and counts the rest
func (r *BatchResult) Summary() string {
	if len(r.Errors) == 0 {
		return ""
	}
	n := len(r.Errors)
	if n > MaxSummaryErrors {
		n = MaxSummaryErrors
	}
	summary := strings.Join(r.Errors[:n], "; ")
	if extra := len(r.Errors) - n; extra > 0 {
		summary += fmt.Sprintf(" (and %d more)", extra)
	}
	return summary
}
