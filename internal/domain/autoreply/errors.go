package autoreply

import (
	"fmt"
)

// Kind classifies pipeline failures.
type Kind string

const (
	KindMissingInput          Kind = "MISSING_INPUT"
	KindConfigurationMissing  Kind = "CONFIGURATION_MISSING"
	KindHistoryFetchFailed    Kind = "HISTORY_FETCH_FAILED"
	KindEmptyHistory          Kind = "EMPTY_HISTORY"
	KindRetrievalFailed       Kind = "RETRIEVAL_FAILED"
	KindTemplateNotConfigured Kind = "TEMPLATE_NOT_CONFIGURED"
	KindInferenceFailed       Kind = "INFERENCE_FAILED"
	KindDispatchFailed        Kind = "DISPATCH_FAILED"
	KindMarkReadFailed        Kind = "MARK_READ_FAILED"
	KindErrorNoteFailed       Kind = "ERROR_NOTE_FAILED"
)

// IsFatal reports whether the kind aborts a run and is audited as an error.
func (k Kind) IsFatal() bool {
	switch k {
	case KindMissingInput, KindRetrievalFailed, KindErrorNoteFailed:
		return false
	default:
		return true
	}
}

// StageError is a classified pipeline failure. Message is what users and the audit trail see.
type StageError struct {
	Kind    Kind
	Stage   Stage
	Message string
	Cause   error
}

// Error returns the user visible message.
func (e *StageError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *StageError) Unwrap() error {
	return e.Cause
}

// IsFatal reports whether the error aborted the run.
func (e *StageError) IsFatal() bool {
	return e.Kind.IsFatal()
}

// Detail renders the error with its classification for operator logs.
func (e *StageError) Detail() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s at %s: %s (caused by: %v)", e.Kind, e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Stage, e.Message)
}

func newStageError(kind Kind, stage Stage, message string, cause error) *StageError {
	return &StageError{Kind: kind, Stage: stage, Message: message, Cause: cause}
}

// Messages shown to users and stored in the audit trail.
const (
	MsgMissingConversationID = "Missing conversationId"
	MsgDisabled              = "Auto-reply disabled."
	MsgInferenceConfigAbsent = "Không tìm thấy cấu hình AI."
	MsgChannelConfigAbsent   = "Không tìm thấy cấu hình Chatwoot."

	msgSuccessFormat       = "Successfully processed conversation %s"
	msgHistoryFetchPrefix  = "Lỗi khi tải tin nhắn từ Chatwoot: "
	msgEmptyHistoryFormat  = "Không tìm thấy tin nhắn cho cuộc trò chuyện #%s"
	msgProxyCallPrefix     = "Lỗi gọi AI Proxy: "
	msgProxyResponsePrefix = "Lỗi từ AI Proxy: "
	msgDispatchPrefix      = "Lỗi gửi tin nhắn qua Chatwoot: "
	msgMarkReadPrefix      = "Lỗi đánh dấu đã đọc qua Chatwoot: "
	msgErrorNotePrefix     = "**Lỗi AI trả lời tự động:**\n\n"
	msgSuccessAuditFormat  = "AI đã trả lời thành công với nội dung: \"%s...\""
)
