package project

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Language identifies the family a program file belongs to.
type Language int

const (
	Unknown Language = iota
	Python
	R
	HTML
)

// Selectable lists the languages a user may pick for the Aim statement.
var Selectable = []Language{Python, R, HTML}

func (l Language) String() string {
	switch l {
	case Python:
		return "Python"
	case R:
		return "R"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// FenceTag returns the Markdown code-fence tag for the language.
func (l Language) FenceTag() string {
	switch l {
	case Python:
		return "python"
	case R:
		return "r"
	case HTML:
		return "html"
	default:
		return ""
	}
}

// ParseLanguage accepts one of the selectable language names, ignoring case.
func ParseLanguage(s string) (Language, error) {
	name := strings.TrimSpace(s)
	for _, l := range Selectable {
		if strings.EqualFold(name, l.String()) {
			return l, nil
		}
	}
	return Unknown, fmt.Errorf("unsupported language %q (valid: Python, R, HTML)", s)
}

// extensionLanguages maps lower-cased extensions (without the dot) to languages.
var extensionLanguages = map[string]Language{
	"py":   Python,
	"r":    R,
	"html": HTML,
}

// DetectLanguage classifies a file by extension. It accepts a full path,
// a bare ".ext" or a bare "ext". Anything unrecognised is Unknown.
func DetectLanguage(pathOrExt string) Language {
	ext := filepath.Ext(pathOrExt)
	if ext == "" {
		// No dot: treat the whole input as the extension.
		if strings.ContainsAny(pathOrExt, `/\`) {
			return Unknown
		}
		ext = pathOrExt
	}
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return Unknown
}
