package answers

import "docqa-backend/internal/llm"

type askRequest struct {
	DocID    string `json:"doc_id"`
	Question string `json:"question"`
}

// AskResponse is returned by POST /ask. Optional fields appear only when the
// capability produced them.
type AskResponse struct {
	Answer string   `json:"answer"`
	Score  *float64 `json:"score,omitempty"`
	Start  *int     `json:"start,omitempty"`
	End    *int     `json:"end,omitempty"`
}

func toResponse(res llm.AnswerResult) AskResponse {
	return AskResponse{
		Answer: res.Answer,
		Score:  res.Confidence,
		Start:  res.Start,
		End:    res.End,
	}
}
