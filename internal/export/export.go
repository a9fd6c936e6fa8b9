// Package export renders question threads and collections into downloadable
// documents. Functions here are pure formatters over already-loaded models.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"stackbase/internal/models"
)

// CSVFilename is the download name for question collection exports.
const CSVFilename = "questions_data.csv"

// dateLayout renders creation timestamps as YYYY-MM-DD HH:MM:SS.
const dateLayout = "2006-01-02 15:04:05"

// csvHeader is the fixed column set of the collection export.
var csvHeader = []string{
	"Title",
	"Content",
	"Asked By",
	"Date Asked",
	"Category",
	"Tags",
	"Comment",
	"Commented By",
}

// ThreadFilename is the download name for a single thread export.
func ThreadFilename(questionID uint) string {
	return fmt.Sprintf("question_%d_comments.txt", questionID)
}

// ThreadText renders a question and its comments as a plain-text document,
// comments in their natural creation order.
func ThreadText(question *models.Question, comments []*models.Comment) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Question Title: %s\n\nQuestion Content:\n%s\n\nComments:\n", question.Title, question.Content)
	for _, comment := range comments {
		fmt.Fprintf(&b, "- %s\n", comment.Content)
	}
	return b.Bytes()
}

// QuestionsCSV renders the questions (with their preloaded comments) as
// UTF-8 CSV prefixed with a byte-order mark. A question with N comments
// produces N rows sharing the question columns; a question with no comments
// produces exactly one row with empty comment columns.
func QuestionsCSV(questions []*models.Question) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("\ufeff")

	w := csv.NewWriter(&b)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, question := range questions {
		category := ""
		if question.Category != nil {
			category = question.Category.Name
		}
		tagNames := make([]string, 0, len(question.Tags))
		for _, tag := range question.Tags {
			tagNames = append(tagNames, tag.Name)
		}
		common := []string{
			question.Title,
			question.Content,
			question.User.Username,
			question.CreatedAt.Format(dateLayout),
			category,
			strings.Join(tagNames, ", "),
		}

		if len(question.Comments) == 0 {
			if err := w.Write(append(common, "", "")); err != nil {
				return nil, err
			}
			continue
		}
		for _, comment := range question.Comments {
			if err := w.Write(append(common, comment.Content, comment.Name)); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
