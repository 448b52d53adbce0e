package capture

import (
	"fmt"
	"strings"

	"listd/internal/model"
)

type ErrorCode string

const (
	ErrCodeEmptyLabel     ErrorCode = "empty_label"
	ErrCodeInvalidMinutes ErrorCode = "invalid_minutes"
)

type ParseError struct {
	Code    ErrorCode
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Entry is the parsed form of a quick-add line. The line is plain label text
// optionally annotated with a #category token and an @minutes token, in any
// position:
//
//	morning run #fitness @45
//	buy milk
type Entry struct {
	Label    string
	Category string
	Minutes  int
}

func Parse(input string) (Entry, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Entry{}, &ParseError{Code: ErrCodeEmptyLabel, Message: "nothing to add"}
	}

	var entry Entry
	labelParts := make([]string, 0, 4)
	for _, token := range strings.Fields(raw) {
		switch {
		case strings.HasPrefix(token, "#") && len(token) > 1:
			entry.Category = strings.TrimPrefix(token, "#")
		case strings.HasPrefix(token, "@") && len(token) > 1:
			minutes, err := model.ParseMinutes(strings.TrimPrefix(token, "@"))
			if err != nil {
				return Entry{}, &ParseError{
					Code:    ErrCodeInvalidMinutes,
					Message: fmt.Sprintf("bad duration %q, want a whole number of minutes", token),
				}
			}
			entry.Minutes = minutes
		default:
			labelParts = append(labelParts, token)
		}
	}

	entry.Label = strings.Join(labelParts, " ")
	if entry.Label == "" {
		return Entry{}, &ParseError{Code: ErrCodeEmptyLabel, Message: "label text is required"}
	}
	return entry, nil
}

// Record converts the entry into a record value ready for the store, which
// still owns id and timestamp allocation.
func (e Entry) Record() model.Record {
	return model.Record{
		Label:    e.Label,
		Category: e.Category,
		Minutes:  e.Minutes,
	}
}
