package schema

// QnaAnswerTable represents the 'qna.answer' table
type QnaAnswerTable struct {
	Table      string
	ID         string
	QuestionID string
	AuthorID   string
	Content    string
	IsAccepted string
	CreatedAt  string
	UpdatedAt  string
}

// QnaAnswer is the schema definition for qna.answer
var QnaAnswer = QnaAnswerTable{
	Table:      "qna.answer",
	ID:         "id",
	QuestionID: "questionid",
	AuthorID:   "authorid",
	Content:    "content",
	IsAccepted: "isaccepted",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}
