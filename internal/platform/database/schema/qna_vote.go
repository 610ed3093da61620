package schema

// QnaVoteTable represents the 'qna.vote' table
type QnaVoteTable struct {
	Table      string
	ID         string
	UserID     string
	Value      string
	QuestionID string
	AnswerID   string
	CreatedAt  string
}

// QnaVote is the schema definition for qna.vote
var QnaVote = QnaVoteTable{
	Table:      "qna.vote",
	ID:         "id",
	UserID:     "userid",
	Value:      "value",
	QuestionID: "questionid",
	AnswerID:   "answerid",
	CreatedAt:  "createdat",
}
