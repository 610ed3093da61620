package schema

// QnaCommentTable represents the 'qna.comment' table
type QnaCommentTable struct {
	Table      string
	ID         string
	AuthorID   string
	Content    string
	QuestionID string
	AnswerID   string
	CreatedAt  string
}

// QnaComment is the schema definition for qna.comment
var QnaComment = QnaCommentTable{
	Table:      "qna.comment",
	ID:         "id",
	AuthorID:   "authorid",
	Content:    "content",
	QuestionID: "questionid",
	AnswerID:   "answerid",
	CreatedAt:  "createdat",
}
