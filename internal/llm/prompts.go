package llm

// SummaryInstruction is appended after the document text for hosted summarization.
const SummaryInstruction = "Provide a summary of the content."

// AnswerSystemPrompt steers chat-style providers toward answers grounded in the supplied text.
const AnswerSystemPrompt = "Answer the user's question using only the document they provide. " +
	"If the document does not contain the answer, reply with an empty message."
