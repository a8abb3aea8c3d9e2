package prompt

import (
	"errors"
	"strconv"
	"strings"

	"github.com/janhq/autoreply-api/internal/domain/retrieval"
	"github.com/janhq/autoreply-api/internal/domain/settings"
)

// ErrTemplateNotConfigured is returned when the training config has no template blocks.
var ErrTemplateNotConfigured = errors.New("Prompt template is not configured.")

// Placeholder tokens recognised in template blocks.
const (
	TokenIndustry            = "{{industry}}"
	TokenRole                = "{{role}}"
	TokenProducts            = "{{products}}"
	TokenStyle               = "{{style}}"
	TokenTone                = "{{tone}}"
	TokenLanguage            = "{{language}}"
	TokenPronouns            = "{{pronouns}}"
	TokenCustomerPronouns    = "{{customerPronouns}}"
	TokenGoal                = "{{goal}}"
	TokenProcessSteps        = "{{processSteps}}"
	TokenConditions          = "{{conditions}}"
	TokenConversationHistory = "{{conversation_history}}"
	TokenDocumentContext     = "{{document_context}}"
)

const (
	fallbackIndustry         = "Không có thông tin"
	fallbackRole             = "Chuyên viên tư vấn"
	fallbackStyle            = "Thân thiện, chuyên nghiệp"
	fallbackTone             = "Nhiệt tình"
	fallbackLanguage         = "Tiếng Việt"
	fallbackPronouns         = "Shop"
	fallbackCustomerPronouns = "bạn"
	fallbackGoal             = "Hỗ trợ và giải đáp thắc mắc"
	fallbackBulletList       = "Không có thông tin."
	fallbackNumberedList     = "Không có quy trình cụ thể."
	fallbackDocField         = "Không có"

	noDocumentContext = "Không tìm thấy tài liệu nội bộ nào liên quan. Hãy trả lời dựa trên thông tin huấn luyện chung và lịch sử trò chuyện."
)

// Input is everything a prompt build depends on.
type Input struct {
	Config    *settings.TrainingConfig
	History   string
	Documents []retrieval.Document
}

// Replacement pairs a literal token with its resolved value.
type Replacement struct {
	Token string
	Value string
}

type placeholder struct {
	token   string
	resolve func(in Input) string
}

// placeholders is evaluated in this exact order for every block.
var placeholders = []placeholder{
	{TokenIndustry, func(in Input) string { return orDefault(in.Config.Industry, fallbackIndustry) }},
	{TokenRole, func(in Input) string { return orDefault(in.Config.Role, fallbackRole) }},
	{TokenProducts, func(in Input) string { return bulletList(in.Config.Products) }},
	{TokenStyle, func(in Input) string { return orDefault(in.Config.Style, fallbackStyle) }},
	{TokenTone, func(in Input) string { return orDefault(in.Config.Tone, fallbackTone) }},
	{TokenLanguage, func(in Input) string { return orDefault(in.Config.Language, fallbackLanguage) }},
	{TokenPronouns, func(in Input) string { return orDefault(in.Config.Pronouns, fallbackPronouns) }},
	{TokenCustomerPronouns, func(in Input) string { return orDefault(in.Config.CustomerPronouns, fallbackCustomerPronouns) }},
	{TokenGoal, func(in Input) string { return orDefault(in.Config.Goal, fallbackGoal) }},
	{TokenProcessSteps, func(in Input) string { return numberedList(in.Config.ProcessSteps) }},
	{TokenConditions, func(in Input) string { return bulletList(in.Config.Conditions) }},
	{TokenConversationHistory, func(in Input) string { return in.History }},
	{TokenDocumentContext, func(in Input) string { return DocumentContext(in.Documents) }},
}

// Tokens lists every recognised placeholder in resolution order.
func Tokens() []string {
	tokens := make([]string, len(placeholders))
	for i, p := range placeholders {
		tokens[i] = p.token
	}
	return tokens
}

// Resolve evaluates the placeholder table once for the given input.
func Resolve(in Input) []Replacement {
	if in.Config == nil {
		in.Config = &settings.TrainingConfig{}
	}
	table := make([]Replacement, len(placeholders))
	for i, p := range placeholders {
		table[i] = Replacement{Token: p.token, Value: p.resolve(in)}
	}
	return table
}

// Substitute replaces every occurrence of each token literally, one token at a time in table order.
// Values are inserted verbatim and a later token may match text introduced by an earlier value.
func Substitute(content string, table []Replacement) string {
	for _, r := range table {
		if r.Token == "" {
			continue
		}
		content = strings.ReplaceAll(content, r.Token, r.Value)
	}
	return content
}

// Build renders the configured template blocks into the final system prompt.
func Build(in Input) (string, error) {
	if in.Config == nil || len(in.Config.PromptTemplate) == 0 {
		return "", ErrTemplateNotConfigured
	}

	table := Resolve(in)
	sections := make([]string, 0, len(in.Config.PromptTemplate))
	for _, block := range in.Config.PromptTemplate {
		sections = append(sections, "# "+strings.ToUpper(block.Title)+"\n"+Substitute(block.Content, table))
	}
	return strings.Join(sections, "\n\n"), nil
}

// DocumentContext renders the first retrieved document, or the no-document notice.
func DocumentContext(docs []retrieval.Document) string {
	if len(docs) == 0 {
		return noDocumentContext
	}
	doc := docs[0]

	var b strings.Builder
	b.WriteString("Hệ thống đã tìm thấy một tài liệu nội bộ có liên quan. Hãy dựa vào đây để trả lời.\n")
	b.WriteString("- **Tiêu đề tài liệu:** " + orDefault(doc.Title, fallbackDocField) + "\n")
	b.WriteString("- **Mục đích:** " + orDefault(doc.Purpose, fallbackDocField) + "\n")
	b.WriteString("- **Loại tài liệu:** " + orDefault(doc.DocumentType, fallbackDocField) + "\n")
	b.WriteString("- **Nội dung chính:** \n  " + orDefault(doc.Content, fallbackDocField) + "\n\n")
	b.WriteString(">>> **VÍ DỤ ÁP DỤNG (RẤT QUAN TRỌNG):**\n")
	b.WriteString("- **Khi khách hỏi tương tự:** \"" + orDefault(doc.ExampleCustomerMessage, fallbackDocField) + "\"\n")
	b.WriteString("- **Hãy trả lời theo mẫu:** \"" + orDefault(doc.ExampleAgentReply, fallbackDocField) + "\"\n")
	b.WriteString("<<<")
	return b.String()
}

func bulletList(items []settings.ListItem) string {
	if len(items) == 0 {
		return fallbackBulletList
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item.Value
	}
	return strings.Join(lines, "\n")
}

func numberedList(items []settings.ListItem) string {
	if len(items) == 0 {
		return fallbackNumberedList
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = strconv.Itoa(i+1) + ". " + item.Value
	}
	return strings.Join(lines, "\n")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
