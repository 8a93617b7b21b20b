package project

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected Language
	}{
		{"solver.py", Python},
		{"dir/sub/analysis.r", R},
		{"index.html", HTML},
		{"UPPER.PY", Python},
		{"Stats.R", R},
		{"page.HTML", HTML},
		{".py", Python},
		{"py", Python},
		{"html", HTML},
		{"r", R},
		{"page.htm", Unknown},
		{"main.go", Unknown},
		{"Makefile", Unknown},
		{"dir/README", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DetectLanguage(tt.input); got != tt.expected {
				t.Errorf("DetectLanguage(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input   string
		want    Language
		wantErr bool
	}{
		{"Python", Python, false},
		{"python", Python, false},
		{" R ", R, false},
		{"html", HTML, false},
		{"Unknown", Unknown, true},
		{"Go", Unknown, true},
		{"", Unknown, true},
	}

	for _, tt := range tests {
		got, err := ParseLanguage(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLanguage(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLanguage(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLanguageString(t *testing.T) {
	names := map[Language]string{Python: "Python", R: "R", HTML: "HTML", Unknown: "Unknown", Language(99): "Unknown"}
	for lang, want := range names {
		if got := lang.String(); got != want {
			t.Errorf("Language(%d).String() = %q, want %q", int(lang), got, want)
		}
	}
}
