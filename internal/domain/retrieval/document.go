package retrieval

// Document is a knowledge base entry returned by semantic search.
type Document struct {
	ID                     int64   `json:"id"`
	Title                  string  `json:"title"`
	Purpose                string  `json:"purpose"`
	DocumentType           string  `json:"document_type"`
	Content                string  `json:"content"`
	ExampleCustomerMessage string  `json:"example_customer_message"`
	ExampleAgentReply      string  `json:"example_agent_reply"`
	Similarity             float64 `json:"similarity"`
}
