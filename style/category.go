package style

import "fmt"

// Category is the display class of a highlighted region. The set is
// closed: every language maps its token kinds onto these values and the
// rendering side only ever sees these.
type Category uint8

const (
	Keyword Category = iota
	Type
	Number
	String
	Comment
	Operator
	Method
	Variable
	AttrName
	AttrValue
	Tag
	TagName
	EntityRef
	LangConst
	Preprocessor

	numCategories
)

var categoryNames = [numCategories]string{
	Keyword:      "keyword",
	Type:         "type",
	Number:       "number",
	String:       "string",
	Comment:      "comment",
	Operator:     "operator",
	Method:       "method",
	Variable:     "variable",
	AttrName:     "attr_name",
	AttrValue:    "attr_value",
	Tag:          "tag",
	TagName:      "tag_name",
	EntityRef:    "entity_ref",
	LangConst:    "lang_const",
	Preprocessor: "preprocessor",
}

// String returns the stable lower-case name of c, as used in
// configuration files and command output.
func (c Category) String() string {
	if c < numCategories {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return c < numCategories
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory returns the category named s.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}
