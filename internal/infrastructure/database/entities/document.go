package entities

// MatchedDocument is a row returned by the match_documents database function.
type MatchedDocument struct {
	ID                     int64
	Title                  *string
	Purpose                *string
	DocumentType           *string
	Content                *string
	ExampleCustomerMessage *string
	ExampleAgentReply      *string
	Similarity             float64
}
