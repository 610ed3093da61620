package schema

// QnaTagTable represents the 'qna.tag' table
type QnaTagTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	CreatedAt   string
}

// QnaTag is the schema definition for qna.tag
var QnaTag = QnaTagTable{
	Table:       "qna.tag",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	CreatedAt:   "createdat",
}

func (t QnaTagTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Description, t.CreatedAt}
}
