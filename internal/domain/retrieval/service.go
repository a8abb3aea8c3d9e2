package retrieval

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/janhq/autoreply-api/internal/domain/inference"
	"github.com/janhq/autoreply-api/internal/domain/settings"
	"github.com/janhq/autoreply-api/internal/utils/platformerrors"
)

// User facing failure messages of the search endpoint.
const (
	MsgMissingQuery        = "Yêu cầu thiếu 'query'."
	MsgSettingsMissing     = "Vui lòng cấu hình API trong trang Cài đặt API AI."
	MsgInvalidEmbedding    = "Phản hồi từ proxy không chứa embedding hợp lệ."
	msgProxyCallPrefix     = "Lỗi gọi AI Proxy: "
	msgProxyResponsePrefix = "Lỗi từ AI Proxy: "
	msgMatchPrefix         = "Lỗi tìm kiếm tài liệu: "
)

// DocumentStore runs vector similarity search over the knowledge base.
type DocumentStore interface {
	MatchDocuments(ctx context.Context, embedding []float32, threshold float64, count int) ([]Document, error)
}

// EmbeddingCache memoises query embeddings. Misses and failures are both reported as misses.
type EmbeddingCache interface {
	Get(ctx context.Context, key string) ([]float32, bool)
	Set(ctx context.Context, key string, value []float32)
}

// Searcher is what the reply pipeline needs from retrieval.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Document, error)
}

// Options tunes semantic search.
type Options struct {
	Threshold      float64
	Count          int
	EmbeddingModel string
}

// Service embeds a query and matches it against stored documents.
type Service struct {
	settings settings.Repository
	embedder inference.Client
	store    DocumentStore
	cache    EmbeddingCache
	opts     Options
	log      zerolog.Logger
}

// NewService creates a retrieval service.
func NewService(repo settings.Repository, embedder inference.Client, store DocumentStore, cache EmbeddingCache, opts Options, log zerolog.Logger) *Service {
	return &Service{
		settings: repo,
		embedder: embedder,
		store:    store,
		cache:    cache,
		opts:     opts,
		log:      log.With().Str("component", "retrieval").Logger(),
	}
}

// Search returns documents ranked by similarity to query, possibly none.
func (s *Service) Search(ctx context.Context, query string) ([]Document, error) {
	if strings.TrimSpace(query) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, MsgMissingQuery, nil)
	}

	creds, err := s.settings.GetInferenceSettings(ctx)
	if err != nil || !creds.Usable() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, MsgSettingsMissing, err)
	}

	model := creds.EmbeddingModel
	if model == "" {
		model = s.opts.EmbeddingModel
	}

	embedding, err := s.embed(ctx, creds, model, query)
	if err != nil {
		return nil, err
	}

	docs, err := s.store.MatchDocuments(ctx, embedding, s.opts.Threshold, s.opts.Count)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeDatabaseError, msgMatchPrefix+err.Error(), err)
	}

	s.log.Debug().Int("matches", len(docs)).Str("model", model).Msg("document search completed")
	return docs, nil
}

func (s *Service) embed(ctx context.Context, creds *settings.InferenceSettings, model, text string) ([]float32, error) {
	key := cacheKey(creds.APIURL, model, text)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok && len(cached) > 0 {
			return cached, nil
		}
	}

	embedding, err := s.embedder.Embed(ctx, creds, model, text)
	if err != nil {
		var providerErr *inference.ProviderError
		if errors.As(err, &providerErr) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, msgProxyResponsePrefix+providerErr.Message, err)
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, msgProxyCallPrefix+err.Error(), err)
	}
	if len(embedding) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, MsgInvalidEmbedding, nil)
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, embedding)
	}
	return embedding, nil
}

func cacheKey(endpoint, model, text string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%s\x00%s", endpoint, model, text)))
	return hex.EncodeToString(sum[:])
}
