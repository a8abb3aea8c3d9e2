package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/autoreply-api/internal/domain/retrieval"
	"github.com/janhq/autoreply-api/internal/domain/settings"
)

func TestBuildDefaultLanguage(t *testing.T) {
	cfg := &settings.TrainingConfig{
		PromptTemplate: []settings.TemplateBlock{{Title: "rules", Content: "Lang: {{language}}"}},
	}

	out, err := Build(Input{Config: cfg, History: "[..] User: Hi"})
	require.NoError(t, err)
	assert.Equal(t, "# RULES\nLang: Tiếng Việt", out)
}

func TestBuildTemplateNotConfigured(t *testing.T) {
	_, err := Build(Input{Config: &settings.TrainingConfig{}})
	assert.ErrorIs(t, err, ErrTemplateNotConfigured)
	assert.Equal(t, "Prompt template is not configured.", err.Error())

	_, err = Build(Input{})
	assert.ErrorIs(t, err, ErrTemplateNotConfigured)
}

func TestBuildSectionsInOrder(t *testing.T) {
	cfg := &settings.TrainingConfig{
		PromptTemplate: []settings.TemplateBlock{
			{Title: "Vai trò", Content: "Bạn là {{role}}"},
			{Title: "lịch sử", Content: "{{conversation_history}}"},
			{Title: "Tài liệu", Content: "{{document_context}}"},
		},
	}

	out, err := Build(Input{Config: cfg, History: "line1\nline2"})
	require.NoError(t, err)

	sections := strings.Split(out, "\n\n")
	require.Len(t, sections, 3)
	assert.Equal(t, "# VAI TRÒ\nBạn là Chuyên viên tư vấn", sections[0])
	assert.Equal(t, "# LỊCH SỬ\nline1\nline2", sections[1])
	assert.Equal(t, "# TÀI LIỆU\n"+noDocumentContext, sections[2])
}

func TestBuildRemovesEveryToken(t *testing.T) {
	all := strings.Join(Tokens(), " | ")
	configs := map[string]*settings.TrainingConfig{
		"empty": {},
		"filled": {
			Industry:         "Mỹ phẩm",
			Role:             "Tư vấn viên",
			Products:         []settings.ListItem{{Value: "Son"}, {Value: "Kem"}},
			Style:            "Ngắn gọn",
			Tone:             "Vui vẻ",
			Language:         "English",
			Pronouns:         "Em",
			CustomerPronouns: "chị",
			Goal:             "Chốt đơn",
			ProcessSteps:     []settings.ListItem{{Value: "Chào"}, {Value: "Hỏi nhu cầu"}},
			Conditions:       []settings.ListItem{{Value: "Không hứa giảm giá"}},
		},
	}
	docs := [][]retrieval.Document{nil, {{Title: "Bảng giá"}}}

	for name, cfg := range configs {
		for _, d := range docs {
			cfg.PromptTemplate = []settings.TemplateBlock{{Title: "all", Content: all + "\n" + all}}
			out, err := Build(Input{Config: cfg, History: "h", Documents: d})
			require.NoError(t, err, name)
			for _, token := range Tokens() {
				assert.NotContains(t, out, token, name)
			}
		}
	}
}

func TestListFallbacksAreDistinct(t *testing.T) {
	table := Resolve(Input{Config: &settings.TrainingConfig{}})
	values := map[string]string{}
	for _, r := range table {
		values[r.Token] = r.Value
	}

	assert.Equal(t, "Không có thông tin.", values[TokenProducts])
	assert.Equal(t, "Không có thông tin.", values[TokenConditions])
	assert.Equal(t, "Không có quy trình cụ thể.", values[TokenProcessSteps])
	assert.Equal(t, "Không có thông tin", values[TokenIndustry])
	assert.Equal(t, "Shop", values[TokenPronouns])
	assert.Equal(t, "bạn", values[TokenCustomerPronouns])
	assert.Equal(t, "Hỗ trợ và giải đáp thắc mắc", values[TokenGoal])
	assert.Equal(t, "Thân thiện, chuyên nghiệp", values[TokenStyle])
	assert.Equal(t, "Nhiệt tình", values[TokenTone])
}

func TestListFormatting(t *testing.T) {
	cfg := &settings.TrainingConfig{
		Products:     []settings.ListItem{{Value: "Son"}, {Value: "Kem"}},
		ProcessSteps: []settings.ListItem{{Value: "Chào"}, {Value: "Hỏi"}, {Value: "Chốt"}},
		PromptTemplate: []settings.TemplateBlock{
			{Title: "p", Content: "{{products}}"},
			{Title: "s", Content: "{{processSteps}}"},
		},
	}

	out, err := Build(Input{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, "# P\n- Son\n- Kem\n\n# S\n1. Chào\n2. Hỏi\n3. Chốt", out)
}

func TestDocumentContextUsesFirstDocumentOnly(t *testing.T) {
	docs := []retrieval.Document{
		{Title: "Chính sách đổi trả", Content: "Đổi trong 7 ngày", ExampleCustomerMessage: "Đổi được không?"},
		{Title: "Khác"},
	}

	out := DocumentContext(docs)
	assert.Contains(t, out, "- **Tiêu đề tài liệu:** Chính sách đổi trả\n")
	assert.Contains(t, out, "- **Mục đích:** Không có\n")
	assert.Contains(t, out, "- **Nội dung chính:** \n  Đổi trong 7 ngày\n\n")
	assert.Contains(t, out, "- **Khi khách hỏi tương tự:** \"Đổi được không?\"")
	assert.Contains(t, out, "- **Hãy trả lời theo mẫu:** \"Không có\"")
	assert.NotContains(t, out, "Khác")
	assert.True(t, strings.HasSuffix(out, "<<<"))
}

func TestSubstituteIsLiteral(t *testing.T) {
	table := []Replacement{{Token: "{{a}}", Value: "$& (.*)"}}
	assert.Equal(t, "x $& (.*) y $& (.*)", Substitute("x {{a}} y {{a}}", table))
}

func TestSubstituteIsSequential(t *testing.T) {
	// A value containing a later token is expanded by that later token.
	table := []Replacement{
		{Token: TokenIndustry, Value: "về {{role}}"},
		{Token: TokenRole, Value: "tư vấn"},
	}
	assert.Equal(t, "về tư vấn", Substitute(TokenIndustry, table))
}
