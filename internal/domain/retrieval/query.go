package retrieval

import (
	"strings"

	"github.com/janhq/autoreply-api/internal/domain/settings"
)

const unknownContext = "Không rõ"

// BuildQuery combines the business context with the customer question into one search query.
func BuildQuery(cfg *settings.TrainingConfig, question string) string {
	industry := unknownContext
	products := unknownContext
	if cfg != nil {
		if cfg.Industry != "" {
			industry = cfg.Industry
		}
		if len(cfg.Products) > 0 {
			products = strings.Join(cfg.ProductValues(), ", ")
		}
	}

	raw := "Bối cảnh kinh doanh: " + industry + ".\n" +
		"Sản phẩm/dịch vụ chính: " + products + ".\n" +
		"Câu hỏi của khách hàng: " + question
	return strings.Join(strings.Fields(raw), " ")
}
