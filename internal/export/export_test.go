package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"stackbase/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadFilename(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "question_7_comments.txt", ThreadFilename(7))
}

func TestThreadText(t *testing.T) {
	t.Parallel()

	question := &models.Question{
		Title:   "How do I test HTTP handlers?",
		Content: "I keep getting nil pointer panics.\nWhat am I missing?",
	}
	comments := []*models.Comment{
		{Content: "Use httptest.NewRequest."},
		{Content: "Check that your router is initialized."},
	}

	got := string(ThreadText(question, comments))
	want := "Question Title: How do I test HTTP handlers?\n\n" +
		"Question Content:\nI keep getting nil pointer panics.\nWhat am I missing?\n\n" +
		"Comments:\n" +
		"- Use httptest.NewRequest.\n" +
		"- Check that your router is initialized.\n"
	assert.Equal(t, want, got)
}

func TestThreadText_NoComments(t *testing.T) {
	t.Parallel()

	got := string(ThreadText(&models.Question{Title: "Lonely question", Content: "No takers."}, nil))
	assert.True(t, strings.HasSuffix(got, "Comments:\n"))
	assert.NotContains(t, got, "- ")
}

func questionFixture() *models.Question {
	created := time.Date(2024, 5, 2, 9, 15, 30, 0, time.UTC)
	return &models.Question{
		Title:     "Index not used",
		Content:   "The planner ignores my index.",
		User:      models.User{Username: "dana"},
		CreatedAt: created,
		Category:  &models.Category{Name: "Databases"},
		Tags:      []models.Tag{{Name: "sql"}, {Name: "performance"}},
	}
}

func TestQuestionsCSV_StartsWithBOMAndHeader(t *testing.T) {
	t.Parallel()

	data, err := QuestionsCSV(nil)
	require.NoError(t, err)

	s := string(data)
	require.True(t, strings.HasPrefix(s, "\ufeff"), "missing byte-order mark")

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(s, "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{
		"Title", "Content", "Asked By", "Date Asked", "Category", "Tags", "Comment", "Commented By",
	}, records[0])
}

func TestQuestionsCSV_NoCommentsProducesSingleRow(t *testing.T) {
	t.Parallel()

	question := questionFixture()
	data, err := QuestionsCSV([]*models.Question{question})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	assert.Equal(t, "Index not used", row[0])
	assert.Equal(t, "The planner ignores my index.", row[1])
	assert.Equal(t, "dana", row[2])
	assert.Equal(t, "2024-05-02 09:15:30", row[3])
	assert.Equal(t, "Databases", row[4])
	assert.Equal(t, "sql, performance", row[5])
	assert.Empty(t, row[6])
	assert.Empty(t, row[7])
}

func TestQuestionsCSV_OneRowPerComment(t *testing.T) {
	t.Parallel()

	question := questionFixture()
	question.Comments = []models.Comment{
		{Content: "Run ANALYZE first.", Name: "sam"},
		{Content: "Check the column statistics.", Name: "lee"},
	}

	data, err := QuestionsCSV([]*models.Question{question})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i, row := range records[1:] {
		assert.Equal(t, "Index not used", row[0], "row %d shares question columns", i)
		assert.Equal(t, "dana", row[2])
	}
	assert.Equal(t, "Run ANALYZE first.", records[1][6])
	assert.Equal(t, "sam", records[1][7])
	assert.Equal(t, "Check the column statistics.", records[2][6])
	assert.Equal(t, "lee", records[2][7])
}

func TestQuestionsCSV_MissingCategory(t *testing.T) {
	t.Parallel()

	question := questionFixture()
	question.Category = nil
	question.Tags = nil

	data, err := QuestionsCSV([]*models.Question{question})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, records[1][4])
	assert.Empty(t, records[1][5])
}
