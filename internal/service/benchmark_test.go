package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/personal-blog-api/internal/models"
)

// BenchmarkBatchTransition flips 100 articles between draft and published
func BenchmarkBatchTransition(b *testing.B) {
	env := newTestEnv(b)
	ids := make([]int64, 100)
	for i := range ids {
		ids[i] = env.createArticle(b, models.ArticleDraft).ID
	}

	ctx := context.Background()
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		op := models.BatchPublish
		if i%2 == 1 {
			op = models.BatchUnpublish
		}
		result, err := env.svc.Article.Batch(ctx, op, ids)
		if err != nil || result.ErrorCount != 0 {
			b.Fatalf("batch %s failed: %v %+v", op, err, result)
		}
	}

	b.ReportMetric(float64(len(ids)*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkMediaLookupParallel resolves one markdown ID from many goroutines
func BenchmarkMediaLookupParallel(b *testing.B) {
	env := newTestEnv(b)
	ctx := context.Background()
	up, err := env.svc.Media.UploadMarkdown(ctx, "post.md", "", "", strings.NewReader("# hi"))
	if err != nil {
		b.Fatalf("upload failed: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := env.svc.Media.Markdown(ctx, up.ID); err != nil {
				b.Errorf("lookup failed: %v", err)
				return
			}
		}
	})
}
