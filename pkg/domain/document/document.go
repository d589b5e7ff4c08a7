// Package document models requirements documents: named sections containing
// user stories, EARS acceptance criteria, and a summary checklist.
package document

// CriterionForm identifies which controlled sentence form an acceptance
// criterion follows.
type CriterionForm string

const (
	FormWhenThen    CriterionForm = "when_then"     // WHEN <event> THEN <system> SHALL <response>
	FormWhenAndThen CriterionForm = "when_and_then" // WHEN <event> AND <condition> THEN <system> SHALL <response>
	FormIfThen      CriterionForm = "if_then"       // IF <precondition> THEN <system> SHALL <response>
	FormWhile       CriterionForm = "while"         // WHILE <condition> THE <system> SHALL <response>
	FormInvalid     CriterionForm = "invalid"
)

// AcceptanceCriterion is a single condition-response statement attached to a
// requirement.
type AcceptanceCriterion struct {
	Text string
	Line int
	Form CriterionForm
}

// UserStory is the one-line role / feature / benefit statement that motivates
// a requirement.
type UserStory struct {
	Role    string
	Feature string
	Benefit string
	Text    string
	Line    int
}

// Requirement is a titled unit containing a user story and an ordered
// sequence of acceptance criteria.
type Requirement struct {
	Title    string
	Line     int
	Story    *UserStory
	Criteria []AcceptanceCriterion
}

// ChecklistItem is a boolean completion marker in the summary section.
type ChecklistItem struct {
	Label   string
	Checked bool
	Line    int
}

// Section is a named block of prose delimited by a second-level heading.
type Section struct {
	Name  string
	Level int
	Line  int
	Lines []string
}

// Document is the parsed form of a requirements document.
type Document struct {
	Path         string
	Title        string
	Sections     []Section
	Requirements []Requirement
	Checklist    []ChecklistItem
}

// Section returns the named section, or nil if the document has none.
func (d *Document) Section(name string) *Section {
	for i := range d.Sections {
		if d.Sections[i].Name == name {
			return &d.Sections[i]
		}
	}
	return nil
}
