package schema

// QnaQuestionTable represents the 'qna.question' table
type QnaQuestionTable struct {
	Table            string
	ID               string
	Title            string
	Content          string
	AuthorID         string
	Views            string
	Slug             string
	IsSolved         string
	AcceptedAnswerID string
	CreatedAt        string
	UpdatedAt        string
}

// QnaQuestion is the schema definition for qna.question
var QnaQuestion = QnaQuestionTable{
	Table:            "qna.question",
	ID:               "id",
	Title:            "title",
	Content:          "content",
	AuthorID:         "authorid",
	Views:            "views",
	Slug:             "slug",
	IsSolved:         "issolved",
	AcceptedAnswerID: "acceptedanswerid",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}
