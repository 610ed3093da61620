package schema

// QnaQuestionTagTable represents the 'qna.questiontag' junction table
type QnaQuestionTagTable struct {
	Table      string
	QuestionID string
	TagID      string
}

// QnaQuestionTag is the schema definition for qna.questiontag
var QnaQuestionTag = QnaQuestionTagTable{
	Table:      "qna.questiontag",
	QuestionID: "questionid",
	TagID:      "tagid",
}
