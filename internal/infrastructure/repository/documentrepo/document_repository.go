package documentrepo

import (
	"context"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/janhq/autoreply-api/internal/domain/retrieval"
	"github.com/janhq/autoreply-api/internal/infrastructure/database/entities"
)

// matchDocumentsSQL calls the pgvector similarity function owned by the knowledge base.
const matchDocumentsSQL = `SELECT * FROM match_documents(?::vector, ?, ?)`

// DocumentGormRepository implements retrieval.DocumentStore.
type DocumentGormRepository struct {
	db *gorm.DB
}

var _ retrieval.DocumentStore = (*DocumentGormRepository)(nil)

// NewDocumentGormRepository constructs a new repository.
func NewDocumentGormRepository(db *gorm.DB) *DocumentGormRepository {
	return &DocumentGormRepository{db: db}
}

// MatchDocuments returns documents above threshold ordered by similarity.
func (repo *DocumentGormRepository) MatchDocuments(ctx context.Context, embedding []float32, threshold float64, count int) ([]retrieval.Document, error) {
	var rows []entities.MatchedDocument
	err := repo.db.WithContext(ctx).
		Raw(matchDocumentsSQL, VectorLiteral(embedding), threshold, count).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	docs := make([]retrieval.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, retrieval.Document{
			ID:                     row.ID,
			Title:                  deref(row.Title),
			Purpose:                deref(row.Purpose),
			DocumentType:           deref(row.DocumentType),
			Content:                deref(row.Content),
			ExampleCustomerMessage: deref(row.ExampleCustomerMessage),
			ExampleAgentReply:      deref(row.ExampleAgentReply),
			Similarity:             row.Similarity,
		})
	}
	return docs, nil
}

// VectorLiteral renders an embedding in pgvector text form, e.g. [0.1,0.2].
func VectorLiteral(embedding []float32) string {
	var b strings.Builder
	b.Grow(len(embedding)*10 + 2)
	b.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
